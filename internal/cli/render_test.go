package cli

import (
	"bytes"
	"testing"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/view"

	"github.com/stretchr/testify/assert"
)

func TestListRenderer_Render(t *testing.T) {
	display := config.NewConfig().Display
	display.Color = false
	r := NewListRenderer(display, func() time.Time { return testNow })

	due := testNow.Add(2 * time.Hour)
	task := testTask("abc", "Buy milk", domain.StatusTodo, time.Hour)
	task.Description = "oat, 2 litres"
	task.DueDate = &due

	var buf bytes.Buffer
	r.Render(&buf, view.Derive([]domain.Task{task}, view.FilterAll, view.SortByDate))

	expected := "1 Total | 1 Active | 0 Completed\n\n" +
		"[ ] Buy milk (TODO) DUE SOON\n" +
		"    id abc · due " + due.Local().Format(display.TimeFormat) +
		" · updated " + task.UpdatedAt.Local().Format(display.TimeFormat) + "\n" +
		"    oat, 2 litres\n"
	assert.Equal(t, expected, buf.String())
}

func TestListRenderer_DueSoonWindow(t *testing.T) {
	display := config.NewConfig().Display
	display.Color = false
	display.DueSoonWindow = time.Hour
	r := NewListRenderer(display, func() time.Time { return testNow })

	due := testNow.Add(2 * time.Hour)
	task := testTask("1", "Later", domain.StatusTodo, 0)
	task.DueDate = &due

	var buf bytes.Buffer
	r.Render(&buf, view.Derive([]domain.Task{task}, view.FilterAll, view.SortByDate))
	assert.NotContains(t, buf.String(), "DUE SOON")
}

func TestListRenderer_EmptyFilteredView(t *testing.T) {
	display := config.NewConfig().Display
	display.Color = false
	r := NewListRenderer(display, func() time.Time { return testNow })

	tasks := []domain.Task{testTask("1", "Open", domain.StatusTodo, 0)}
	var buf bytes.Buffer
	r.Render(&buf, view.Derive(tasks, view.FilterCompleted, view.SortByDate))

	assert.Equal(t, "1 Total | 1 Active | 0 Completed\n\n"+view.EmptyMessage+"\n", buf.String())
}
