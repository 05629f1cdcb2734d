// Package netx fetches export documents from presigned object-store URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/filex"
)

// Download GETs url and copies the body to w. Anything but 200 is an error
// carrying the status and the start of the body.
func Download(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// DownloadToFile saves the document at url to path atomically.
func DownloadToFile(ctx context.Context, url, path string) error {
	pr, pw := io.Pipe()

	go func() {
		pw.CloseWithError(Download(ctx, url, pw))
	}()

	err := filex.WriteFileAtomic(path, pr)
	_ = pr.CloseWithError(err)
	return err
}
