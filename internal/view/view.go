// Package view derives what the task list shows from the raw collection
// and the user's filter and sort selection.
package view

import (
	"fmt"
	"sort"
	"strings"

	"task-manager/internal/domain"
)

// EmptyMessage is shown when the derived list has no tasks.
const EmptyMessage = "No tasks to display"

// Filter selects which tasks are listed.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in the order the UI cycles through them.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter reads a filter name. An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Match reports whether task passes the filter.
func (f Filter) Match(task domain.Task) bool {
	switch f {
	case FilterActive:
		return task.Status.IsActive()
	case FilterCompleted:
		return task.Status == domain.StatusDone
	default:
		return true
	}
}

// SortKey selects the ordering of the derived list.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByStatus SortKey = "status"
	SortByDue    SortKey = "due"
)

// SortKeys lists every sort key in the order the UI cycles through them.
var SortKeys = []SortKey{SortByDate, SortByStatus, SortByDue}

// ParseSortKey reads a sort key name. An empty string means SortByDate.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByDate, nil
	case SortByDate, SortByStatus, SortByDue:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want date, status or due)", s)
}

// Next returns the sort key after k, wrapping around.
func (k SortKey) Next() SortKey {
	for i, candidate := range SortKeys {
		if candidate == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortByDate
}

// Counts are always taken over the whole collection.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

// String renders the stats line, e.g. "3 Total | 2 Active | 1 Completed".
func (c Counts) String() string {
	return fmt.Sprintf("%d Total | %d Active | %d Completed", c.Total, c.Active, c.Completed)
}

// View is the result of a derivation.
type View struct {
	Tasks  []domain.Task
	Counts Counts
	Filter Filter
	Sort   SortKey
}

// Empty reports whether there is nothing to list.
func (v View) Empty() bool {
	return len(v.Tasks) == 0
}

// Derive filters and sorts tasks. The input slice is not modified.
func Derive(tasks []domain.Task, filter Filter, key SortKey) View {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Match(task) {
			filtered = append(filtered, task)
		}
	}

	sortTasks(filtered, key)

	return View{
		Tasks:  filtered,
		Counts: Count(tasks),
		Filter: filter,
		Sort:   key,
	}
}

// Count tallies tasks by completion.
func Count(tasks []domain.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, task := range tasks {
		if task.Status == domain.StatusDone {
			c.Completed++
		} else if task.Status.IsActive() {
			c.Active++
		}
	}
	return c
}

func sortTasks(tasks []domain.Task, key SortKey) {
	switch key {
	case SortByStatus:
		sort.SliceStable(tasks, func(i, j int) bool {
			ri, rj := tasks[i].Status.Rank(), tasks[j].Status.Rank()
			if ri != rj {
				return ri < rj
			}
			return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
		})
	case SortByDue:
		sort.SliceStable(tasks, func(i, j int) bool {
			di, dj := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
		})
	}
}
