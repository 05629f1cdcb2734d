package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/filex"
	"github.com/dmitrijs2005/tasktracker/internal/netx"
)

var errNoID = errors.New("task id is required")

const exportsDir = "exports"

// test seams
var (
	ensureSubDir   = filex.EnsureSubDir
	downloadToFile = netx.DownloadToFile
)

// parseDate accepts the same forms as the server (api.DateLayouts). Calendar
// dates are taken as UTC midnight.
func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := api.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("bad date %q, use YYYY-MM-DD", strings.TrimSpace(s))
	}
	t = t.UTC()
	return &t, nil
}

// argOrPrompt returns the command argument when present and asks otherwise.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		return err
	}
	renderTaskTable(a.out, tasks)
	return nil
}

// Filter asks for each criterion; blank answers leave it out.
func (a *App) Filter(ctx context.Context) error {
	req := &api.FilterTasksRequest{}
	var err error

	if req.Status, err = getSimpleText(a.reader, "Status (Not Started, In Progress, Completed; blank for any)", a.out); err != nil {
		return err
	}
	if req.Priority, err = getSimpleText(a.reader, "Priority (Low, Medium, High; blank for any)", a.out); err != nil {
		return err
	}
	if req.Category, err = getSimpleText(a.reader, "Category (blank for any)", a.out); err != nil {
		return err
	}

	from, err := getSimpleText(a.reader, "Due from, YYYY-MM-DD (blank for open)", a.out)
	if err != nil {
		return err
	}
	if req.StartDate, err = parseDate(from); err != nil {
		return err
	}

	to, err := getSimpleText(a.reader, "Due to, YYYY-MM-DD (blank for open)", a.out)
	if err != nil {
		return err
	}
	if req.EndDate, err = parseDate(to); err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	tasks, err := a.client.FilterTasks(ctx, req)
	if err != nil {
		return err
	}
	renderTaskTable(a.out, tasks)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	term, err := a.argOrPrompt(args, "Search for")
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	tasks, err := a.client.SearchTasks(ctx, term)
	if err != nil {
		return err
	}
	renderTaskTable(a.out, tasks)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter task id to show")
	if err != nil {
		return err
	}
	if id == "" {
		return errNoID
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	t, err := a.client.GetTask(ctx, id)
	if err != nil {
		return err
	}
	renderTask(a.out, t, a.now())
	return nil
}

func (a *App) Add(ctx context.Context) error {
	req := &api.CreateTaskRequest{}
	var err error

	if req.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if req.Description, err = getMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if req.Priority, err = getSimpleText(a.reader, "Priority (Low, Medium, High; blank for Medium)", a.out); err != nil {
		return err
	}
	if req.Status, err = getSimpleText(a.reader, "Status (Not Started, In Progress, Completed; blank for Not Started)", a.out); err != nil {
		return err
	}

	due, err := getSimpleText(a.reader, "Due date, YYYY-MM-DD (blank for none)", a.out)
	if err != nil {
		return err
	}
	if req.DueDate, err = parseDate(due); err != nil {
		return err
	}

	if req.Category, err = getSimpleText(a.reader, "Category (blank for Uncategorized)", a.out); err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	t, err := a.client.CreateTask(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created task %s\n", t.ID)
	return nil
}

// keepOr asks for a new value showing the current one. A blank answer keeps
// the current value and yields nil.
func (a *App) keepOr(label, current string) (*string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (Enter to keep)", label, current), a.out)
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}

// Update loads the task and asks for each field, sending only what changed.
// Entering "-" for the due date clears it.
func (a *App) Update(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter task id to update")
	if err != nil {
		return err
	}
	if id == "" {
		return errNoID
	}

	getCtx, cancel := a.callCtx(ctx)
	current, err := a.client.GetTask(getCtx, id)
	cancel()
	if err != nil {
		return err
	}

	req := &api.UpdateTaskRequest{ID: id}
	if req.Title, err = a.keepOr("Title", current.Title); err != nil {
		return err
	}
	if req.Description, err = a.keepOr("Description", current.Description); err != nil {
		return err
	}
	if req.Priority, err = a.keepOr("Priority", current.Priority); err != nil {
		return err
	}
	if req.Status, err = a.keepOr("Status", current.Status); err != nil {
		return err
	}

	due, err := getSimpleText(a.reader, fmt.Sprintf("Due date [%s] (Enter to keep, - to clear)", formatDue(current.DueDate)), a.out)
	if err != nil {
		return err
	}
	if due == "-" {
		req.ClearDueDate = true
	} else if req.DueDate, err = parseDate(due); err != nil {
		return err
	}

	if req.Category, err = a.keepOr("Category", current.Category); err != nil {
		return err
	}

	ctx, cancel = a.callCtx(ctx)
	defer cancel()

	t, err := a.client.UpdateTask(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated task %s\n", t.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter task id to delete")
	if err != nil {
		return err
	}
	if id == "" {
		return errNoID
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task deleted successfully")
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	s, err := a.client.GetStats(ctx)
	if err != nil {
		return err
	}
	renderStats(a.out, s)
	return nil
}

// Export asks the server for a snapshot link. With a file name argument the
// snapshot is also saved under ./exports.
func (a *App) Export(ctx context.Context, args []string) error {
	callCtx, cancel := a.callCtx(ctx)
	url, err := a.client.Export(callCtx)
	cancel()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Export ready: %s\n", url)

	if len(args) == 0 {
		return nil
	}

	dir, err := ensureSubDir(exportsDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filepath.Base(args[0]))
	if err := downloadToFile(ctx, url, path); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}
