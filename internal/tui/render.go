package tui

import (
	"fmt"
	"strings"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/view"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header   lipgloss.Style
	stats    lipgloss.Style
	banner   lipgloss.Style
	cursor   lipgloss.Style
	done     lipgloss.Style
	overdue  lipgloss.Style
	dueSoon  lipgloss.Style
	muted    lipgloss.Style
	label    lipgloss.Style
	fieldErr lipgloss.Style
	help     lipgloss.Style
}

func newStyles(color bool) styles {
	s := styles{
		header:   lipgloss.NewStyle().Bold(true),
		stats:    lipgloss.NewStyle(),
		banner:   lipgloss.NewStyle().Bold(true),
		cursor:   lipgloss.NewStyle().Bold(true),
		done:     lipgloss.NewStyle().Strikethrough(true),
		overdue:  lipgloss.NewStyle().Bold(true),
		dueSoon:  lipgloss.NewStyle(),
		muted:    lipgloss.NewStyle(),
		label:    lipgloss.NewStyle().Width(13),
		fieldErr: lipgloss.NewStyle(),
		help:     lipgloss.NewStyle(),
	}
	if !color {
		return s
	}
	s.header = s.header.Foreground(lipgloss.Color("39"))
	s.stats = s.stats.Foreground(lipgloss.Color("241"))
	s.banner = s.banner.
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("160")).
		Padding(0, 1)
	s.cursor = s.cursor.Foreground(lipgloss.Color("86"))
	s.done = s.done.Foreground(lipgloss.Color("241"))
	s.overdue = s.overdue.Foreground(lipgloss.Color("196"))
	s.dueSoon = s.dueSoon.Foreground(lipgloss.Color("214"))
	s.muted = s.muted.Foreground(lipgloss.Color("241"))
	s.fieldErr = s.fieldErr.Foreground(lipgloss.Color("196"))
	s.help = s.help.Foreground(lipgloss.Color("241"))
	return s
}

const listHelp = "a add • e edit • space toggle • d delete • f filter • s sort • r reload • q quit"

const formHelp = "tab/shift+tab move • ←/→ change status • enter save • esc cancel"

func (m Model) render() string {
	var b strings.Builder

	v := m.current()
	b.WriteString(m.styles.header.Render("Tasks"))
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("  filter: %s · sort: %s", v.Filter, v.Sort)))
	b.WriteString("\n")
	b.WriteString(m.styles.stats.Render(v.Counts.String()))
	b.WriteString("\n")

	if banner := m.svc.Banner(); banner != "" {
		b.WriteString(m.styles.banner.Render(banner))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.mode == modeForm && m.form != nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderList(v))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.mode == modeForm {
		b.WriteString(m.styles.help.Render(formHelp))
	} else {
		b.WriteString(m.styles.help.Render(listHelp))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderList(v view.View) string {
	if v.Empty() {
		if m.loading {
			return "Loading tasks...\n"
		}
		return view.EmptyMessage + "\n"
	}

	now := m.opts.Now()
	cursor := clampCursor(m.cursor, len(v.Tasks))

	var b strings.Builder
	for i, task := range v.Tasks {
		pointer := "  "
		if i == cursor {
			pointer = m.styles.cursor.Render("> ")
		}

		title := task.Title
		if task.Completed() {
			title = m.styles.done.Render(title)
		}

		line := fmt.Sprintf("%s%s %s  %s", pointer, checkbox(task), title, m.styles.muted.Render(string(task.Status)))
		if badge := m.renderBadge(task, now); badge != "" {
			line += "  " + badge
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == cursor {
			b.WriteString(m.renderDetails(task))
		}
	}
	return b.String()
}

func checkbox(task domain.Task) string {
	if task.Completed() {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) renderBadge(task domain.Task, now time.Time) string {
	state := view.ClassifyWithin(task, now, m.opts.DueSoonWindow)
	switch state {
	case view.Overdue:
		return m.styles.overdue.Render(state.Badge())
	case view.DueSoon:
		return m.styles.dueSoon.Render(state.Badge())
	default:
		return ""
	}
}

func (m Model) renderDetails(task domain.Task) string {
	var b strings.Builder
	if task.Description != "" {
		b.WriteString("      " + task.Description + "\n")
	}
	meta := "Updated " + task.UpdatedAt.Local().Format(m.opts.TimeFormat)
	if task.DueDate != nil {
		meta = "Due " + task.DueDate.Local().Format(m.opts.TimeFormat) + " · " + meta
	}
	b.WriteString("      " + m.styles.muted.Render(meta) + "\n")
	return b.String()
}

func (m Model) renderForm() string {
	f := m.form
	var b strings.Builder

	heading := "New task"
	if f.editing() {
		heading = "Edit task"
	}
	b.WriteString(m.styles.header.Render(heading))
	b.WriteString("\n\n")

	for field := fieldTitle; field < fieldCount; field++ {
		pointer := "  "
		if field == f.focus {
			pointer = m.styles.cursor.Render("> ")
		}

		var value string
		if in := f.input(field); in != nil {
			value = in.View()
		} else {
			value = renderStatusSelector(f.status)
		}

		b.WriteString(pointer + m.styles.label.Render(fieldLabels[field]) + value)
		if msg := f.fieldError(field); msg != "" {
			b.WriteString("  " + m.styles.fieldErr.Render(msg))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderStatusSelector(current domain.Status) string {
	parts := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		if s == current {
			parts[i] = "[" + string(s) + "]"
		} else {
			parts[i] = " " + string(s) + " "
		}
	}
	return "< " + strings.Join(parts, " ") + " >"
}
