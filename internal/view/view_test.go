package view

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"task-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

func ptr(t time.Time) *time.Time {
	return &t
}

// randomTasks builds a collection with duplicate timestamps and missing due
// dates so tie-breaking is exercised.
func randomTasks(r *rand.Rand, n int) []domain.Task {
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = domain.Task{
			ID:        fmt.Sprintf("t%d", i),
			Title:     fmt.Sprintf("task %d", i),
			Status:    domain.Statuses[r.IntN(len(domain.Statuses))],
			UpdatedAt: at(r.IntN(5)),
		}
		if r.IntN(3) > 0 {
			tasks[i].DueDate = ptr(at(r.IntN(10) - 5))
		}
	}
	return tasks
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func indexIn(tasks []domain.Task) map[string]int {
	idx := make(map[string]int, len(tasks))
	for i, t := range tasks {
		idx[t.ID] = i
	}
	return idx
}

func TestParseFilterAndSortKey(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter(" Active ")
	require.NoError(t, err)
	assert.Equal(t, FilterActive, f)

	_, err = ParseFilter("archived")
	assert.Error(t, err)

	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByDate, k)

	k, err = ParseSortKey("DUE")
	require.NoError(t, err)
	assert.Equal(t, SortByDue, k)

	_, err = ParseSortKey("title")
	assert.Error(t, err)
}

func TestNextCycles(t *testing.T) {
	assert.Equal(t, FilterActive, FilterAll.Next())
	assert.Equal(t, FilterCompleted, FilterActive.Next())
	assert.Equal(t, FilterAll, FilterCompleted.Next())

	assert.Equal(t, SortByStatus, SortByDate.Next())
	assert.Equal(t, SortByDue, SortByStatus.Next())
	assert.Equal(t, SortByDate, SortByDue.Next())
}

func TestDerive_FilterProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		tasks := randomTasks(r, r.IntN(30))
		for _, key := range SortKeys {
			active := Derive(tasks, FilterActive, key)
			for _, task := range active.Tasks {
				assert.Contains(t, []domain.Status{domain.StatusTodo, domain.StatusInProgress}, task.Status)
			}

			completed := Derive(tasks, FilterCompleted, key)
			for _, task := range completed.Tasks {
				assert.Equal(t, domain.StatusDone, task.Status)
			}

			all := Derive(tasks, FilterAll, key)
			assert.Len(t, all.Tasks, len(tasks))
			assert.Equal(t, len(tasks), len(active.Tasks)+len(completed.Tasks))
		}
	}
}

func TestDerive_SortByDate(t *testing.T) {
	tasks := []domain.Task{
		{ID: "old", UpdatedAt: at(1)},
		{ID: "new", UpdatedAt: at(3)},
		{ID: "mid-a", UpdatedAt: at(2)},
		{ID: "mid-b", UpdatedAt: at(2)},
	}

	got := Derive(tasks, FilterAll, SortByDate)
	assert.Equal(t, []string{"new", "mid-a", "mid-b", "old"}, ids(got.Tasks))
}

func TestDerive_SortByStatusProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for round := 0; round < 50; round++ {
		tasks := randomTasks(r, r.IntN(30))
		got := Derive(tasks, FilterAll, SortByStatus).Tasks
		input := indexIn(tasks)

		for i := 1; i < len(got); i++ {
			prev, cur := got[i-1], got[i]
			require.LessOrEqual(t, prev.Status.Rank(), cur.Status.Rank())
			if prev.Status == cur.Status {
				require.False(t, prev.UpdatedAt.Before(cur.UpdatedAt), "ties are newest first")
				if prev.UpdatedAt.Equal(cur.UpdatedAt) {
					require.Less(t, input[prev.ID], input[cur.ID], "full ties keep input order")
				}
			}
		}
	}
}

func TestDerive_SortByStatusExample(t *testing.T) {
	tasks := []domain.Task{
		{ID: "done", Status: domain.StatusDone, UpdatedAt: at(9)},
		{ID: "todo-old", Status: domain.StatusTodo, UpdatedAt: at(1)},
		{ID: "progress", Status: domain.StatusInProgress, UpdatedAt: at(5)},
		{ID: "todo-new", Status: domain.StatusTodo, UpdatedAt: at(2)},
	}

	got := Derive(tasks, FilterAll, SortByStatus)
	assert.Equal(t, []string{"todo-new", "todo-old", "progress", "done"}, ids(got.Tasks))
}

func TestDerive_SortByDueProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for round := 0; round < 50; round++ {
		tasks := randomTasks(r, r.IntN(30))
		got := Derive(tasks, FilterAll, SortByDue).Tasks
		input := indexIn(tasks)

		seenMissing := false
		for i, task := range got {
			if task.DueDate == nil {
				seenMissing = true
				if i > 0 && got[i-1].DueDate == nil {
					require.Less(t, input[got[i-1].ID], input[task.ID], "missing due dates keep input order")
				}
				continue
			}
			require.False(t, seenMissing, "tasks with a due date come before tasks without")
			if i > 0 {
				require.False(t, task.DueDate.Before(*got[i-1].DueDate), "due dates ascend")
			}
		}
	}
}

func TestDerive_DoesNotModifyInput(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", UpdatedAt: at(1)},
		{ID: "b", UpdatedAt: at(2)},
	}
	Derive(tasks, FilterAll, SortByDate)
	assert.Equal(t, []string{"a", "b"}, ids(tasks))
}

func TestCounts(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for round := 0; round < 50; round++ {
		tasks := randomTasks(r, r.IntN(30))
		want := Count(tasks)
		assert.Equal(t, want.Total, want.Active+want.Completed)
		assert.Equal(t, len(tasks), want.Total)

		for _, f := range Filters {
			for _, k := range SortKeys {
				assert.Equal(t, want, Derive(tasks, f, k).Counts, "counts ignore filter %s and sort %s", f, k)
			}
		}
	}
}

func TestDerive_Empty(t *testing.T) {
	v := Derive(nil, FilterAll, SortByDate)
	assert.True(t, v.Empty())
	assert.Equal(t, Counts{}, v.Counts)
	assert.Equal(t, "No tasks to display", EmptyMessage)

	onlyDone := []domain.Task{{ID: "x", Status: domain.StatusDone}}
	v = Derive(onlyDone, FilterActive, SortByDate)
	assert.True(t, v.Empty())
	assert.Equal(t, Counts{Total: 1, Completed: 1}, v.Counts)
}

func TestCounts_String(t *testing.T) {
	assert.Equal(t, "0 Total | 0 Active | 0 Completed", Counts{}.String())
	assert.Equal(t, "3 Total | 2 Active | 1 Completed", Counts{Total: 3, Active: 2, Completed: 1}.String())
}
