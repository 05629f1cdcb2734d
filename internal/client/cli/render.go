package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dustin/go-humanize"
)

const dateLayout = "2006-01-02"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Faint(true)

	priorityStyles = map[string]lipgloss.Style{
		"High":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"Medium": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"Low":    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

type column struct {
	title string
	width int
}

var taskColumns = []column{
	{"ID", 36},
	{"TITLE", 28},
	{"PRIORITY", 8},
	{"STATUS", 11},
	{"DUE", 10},
	{"CATEGORY", 14},
}

// truncate cuts s to w runes, marking the cut with "…".
func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func cell(s string, w int, style lipgloss.Style) string {
	return style.Width(w).Render(truncate(s, w))
}

func formatDue(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.UTC().Format(dateLayout)
}

func renderTaskTable(w io.Writer, tasks []*api.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}

	header := make([]string, 0, len(taskColumns))
	for _, c := range taskColumns {
		header = append(header, cell(c.title, c.width, headerStyle))
	}
	fmt.Fprintln(w, strings.Join(header, " "))

	for _, t := range tasks {
		rowStyle := lipgloss.NewStyle()
		if t.Status == "Completed" {
			rowStyle = doneStyle
		}
		values := []string{t.ID, t.Title, t.Priority, t.Status, formatDue(t.DueDate), t.Category}
		row := make([]string, 0, len(values))
		for i, v := range values {
			style := rowStyle
			if i == 2 {
				if ps, ok := priorityStyles[v]; ok {
					style = ps.Inherit(rowStyle)
				}
			}
			row = append(row, cell(v, taskColumns[i].width, style))
		}
		fmt.Fprintln(w, strings.Join(row, " "))
	}
	fmt.Fprintf(w, "%d task(s)\n", len(tasks))
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Width(12).Render(label+":"), value)
}

func renderTask(w io.Writer, t *api.Task, now time.Time) {
	fmt.Fprintln(w, headerStyle.Render(t.Title))
	field(w, "ID", t.ID)
	if t.Description != "" {
		field(w, "Description", t.Description)
	}
	priority := t.Priority
	if ps, ok := priorityStyles[priority]; ok {
		priority = ps.Render(priority)
	}
	field(w, "Priority", priority)
	field(w, "Status", t.Status)
	field(w, "Category", t.Category)
	due := "-"
	if t.DueDate != nil {
		due = fmt.Sprintf("%s (%s)", formatDue(t.DueDate), humanize.RelTime(*t.DueDate, now, "ago", "from now"))
	}
	field(w, "Due", due)
	field(w, "Created", t.CreatedAt.UTC().Format(time.RFC3339))
	field(w, "Updated", t.UpdatedAt.UTC().Format(time.RFC3339))
}

func renderCounts(w io.Writer, title string, counts map[string]int64) {
	fmt.Fprintln(w, headerStyle.Render(title))
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		field(w, k, fmt.Sprint(counts[k]))
	}
}

func renderStats(w io.Writer, s *api.StatsResponse) {
	renderCounts(w, "By status", s.StatusCounts)
	renderCounts(w, "By priority", s.PriorityCounts)

	fmt.Fprintln(w, headerStyle.Render("Due dates"))
	field(w, "Overdue", fmt.Sprint(s.DueDates.Overdue))
	field(w, "Today", fmt.Sprint(s.DueDates.Today))
	field(w, "This week", fmt.Sprint(s.DueDates.ThisWeek))
	field(w, "Future", fmt.Sprint(s.DueDates.Future))

	fmt.Fprintln(w, headerStyle.Render("Recently completed"))
	if len(s.RecentlyCompleted) == 0 {
		fmt.Fprintln(w, "-")
		return
	}
	for _, t := range s.RecentlyCompleted {
		fmt.Fprintf(w, "%s  %s  (updated %s)\n", t.ID, t.Title, t.UpdatedAt.UTC().Format(dateLayout))
	}
}
