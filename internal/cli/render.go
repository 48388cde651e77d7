package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/view"

	"github.com/charmbracelet/lipgloss"
)

// ListRenderer prints a derived view as plain text, with optional color.
type ListRenderer struct {
	display config.DisplayConfig
	now     func() time.Time

	stats   lipgloss.Style
	done    lipgloss.Style
	overdue lipgloss.Style
	dueSoon lipgloss.Style
	muted   lipgloss.Style
}

// NewListRenderer creates a renderer for the given display settings
func NewListRenderer(display config.DisplayConfig, now func() time.Time) *ListRenderer {
	r := &ListRenderer{
		display: display,
		now:     now,
		stats:   lipgloss.NewStyle(),
		done:    lipgloss.NewStyle(),
		overdue: lipgloss.NewStyle(),
		dueSoon: lipgloss.NewStyle(),
		muted:   lipgloss.NewStyle(),
	}
	if display.Color {
		r.stats = r.stats.Bold(true)
		r.done = r.done.Foreground(lipgloss.Color("241"))
		r.overdue = r.overdue.Bold(true).Foreground(lipgloss.Color("196"))
		r.dueSoon = r.dueSoon.Foreground(lipgloss.Color("214"))
		r.muted = r.muted.Foreground(lipgloss.Color("241"))
	}
	return r
}

// Render writes the stats line followed by the tasks, or the empty message
func (r *ListRenderer) Render(w io.Writer, v view.View) {
	fmt.Fprintln(w, r.stats.Render(v.Counts.String()))
	fmt.Fprintln(w)

	if v.Empty() {
		fmt.Fprintln(w, view.EmptyMessage)
		return
	}

	now := r.now()
	for _, task := range v.Tasks {
		fmt.Fprintln(w, r.taskLine(task, now))
		fmt.Fprintln(w, "    "+r.muted.Render(r.metaLine(task)))
		if task.Description != "" {
			fmt.Fprintln(w, "    "+task.Description)
		}
	}
}

func (r *ListRenderer) taskLine(task domain.Task, now time.Time) string {
	box := "[ ]"
	title := task.Title
	if task.Completed() {
		box = "[x]"
		title = r.done.Render(title)
	}

	line := fmt.Sprintf("%s %s (%s)", box, title, task.Status)
	switch state := view.ClassifyWithin(task, now, r.display.DueSoonWindow); state {
	case view.Overdue:
		line += " " + r.overdue.Render(state.Badge())
	case view.DueSoon:
		line += " " + r.dueSoon.Render(state.Badge())
	}
	return line
}

func (r *ListRenderer) metaLine(task domain.Task) string {
	parts := []string{"id " + task.ID}
	if task.DueDate != nil {
		parts = append(parts, "due "+r.formatTime(*task.DueDate))
	}
	parts = append(parts, "updated "+r.formatTime(task.UpdatedAt))
	return strings.Join(parts, " · ")
}

func (r *ListRenderer) formatTime(t time.Time) string {
	return t.Local().Format(r.display.TimeFormat)
}
