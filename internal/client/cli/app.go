package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	client   client.Client
	userName string
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewTaskTrackerClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

// callCtx bounds a single server call by the configured request timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
