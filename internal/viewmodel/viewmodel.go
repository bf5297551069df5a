// Package viewmodel computes the task list a client should render: role
// scoping, search, filters, sorting and pagination as one deterministic
// pipeline. It is a pure function of its inputs; "now" is passed in
// explicitly so deadline filters are testable.
package viewmodel

import (
	"sort"
	"strings"
	"time"

	"github.com/Atharva2908/task-manager/internal/entity"
)

type SortMode string

const (
	SortCreatedDate SortMode = "created_date"
	SortDeadline    SortMode = "deadline"
	SortPriority    SortMode = "priority"
)

type DeadlineFilter string

const (
	DeadlineAll      DeadlineFilter = "all"
	DeadlineToday    DeadlineFilter = "today"
	DeadlineThisWeek DeadlineFilter = "this_week"
	DeadlineOverdue  DeadlineFilter = "overdue"
)

const FilterAll = "all"

// ViewState holds the UI-controlled list parameters. It is owned by the
// caller; the zero value is not usable, start from DefaultViewState.
type ViewState struct {
	Search   string
	Status   string // a TaskStatus value or "all"
	Priority string // a TaskPriority value or "all"
	Deadline DeadlineFilter
	SortBy   SortMode
	Page     int
	PageSize int
}

func DefaultViewState() ViewState {
	return ViewState{
		Status:   FilterAll,
		Priority: FilterAll,
		Deadline: DeadlineAll,
		SortBy:   SortCreatedDate,
		Page:     1,
		PageSize: 10,
	}
}

type Result struct {
	PageItems     []entity.Task             `json:"tasks"`
	TotalMatching int                       `json:"total"`
	TotalPages    int                       `json:"total_pages"`
	Page          int                       `json:"page"`
	PageSize      int                       `json:"page_size"`
	StatusCounts  map[entity.TaskStatus]int `json:"status_counts"`
}

// priority rank for sorting; unknown priorities sort after low.
var priorityRank = map[entity.TaskPriority]int{
	entity.PriorityUrgent: 0,
	entity.PriorityHigh:   1,
	entity.PriorityMedium: 2,
	entity.PriorityLow:    3,
}

// Compute runs the full pipeline and returns the page to display.
// StatusCounts are taken over the role-scoped set before any filtering so
// tab counts reflect everything the user can see. The input slice is never
// mutated. A page past the end yields empty PageItems; the caller resets
// the page, Compute does not clamp.
func Compute(tasks []entity.Task, currentUser *entity.User, state ViewState, now time.Time) Result {
	scoped := scopeForUser(tasks, currentUser)
	counts := countByStatus(scoped)

	filtered := scoped
	if q := strings.ToLower(strings.TrimSpace(state.Search)); q != "" {
		filtered = filterTasks(filtered, func(t entity.Task) bool {
			return matchesSearch(t, q)
		})
	}
	if state.Status != "" && state.Status != FilterAll {
		filtered = filterTasks(filtered, func(t entity.Task) bool {
			return string(t.Status) == state.Status
		})
	}
	if state.Priority != "" && state.Priority != FilterAll {
		filtered = filterTasks(filtered, func(t entity.Task) bool {
			return string(t.Priority) == state.Priority
		})
	}
	if state.Deadline != "" && state.Deadline != DeadlineAll {
		filtered = filterTasks(filtered, func(t entity.Task) bool {
			return matchesDeadline(t, state.Deadline, now)
		})
	}

	sorted := make([]entity.Task, len(filtered))
	copy(sorted, filtered)
	sortTasks(sorted, state.SortBy)

	pageSize := state.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	page := state.Page
	if page < 1 {
		page = 1
	}

	total := len(sorted)
	totalPages := (total + pageSize - 1) / pageSize

	var pageItems []entity.Task
	start := (page - 1) * pageSize
	if start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		pageItems = sorted[start:end]
	} else {
		pageItems = []entity.Task{}
	}

	return Result{
		PageItems:     pageItems,
		TotalMatching: total,
		TotalPages:    totalPages,
		Page:          page,
		PageSize:      pageSize,
		StatusCounts:  counts,
	}
}

// IsOverdue reports whether the task is past its deadline. Completed tasks
// and tasks without a due date are never overdue.
func IsOverdue(task entity.Task, now time.Time) bool {
	if task.Status == entity.StatusCompleted || task.DueDate == nil {
		return false
	}
	return task.DueDate.Before(now)
}

// scopeForUser enforces the visibility boundary: employees only ever see
// tasks assigned to them, other roles see the full collection.
func scopeForUser(tasks []entity.Task, user *entity.User) []entity.Task {
	if user == nil || user.Role != entity.RoleEmployee {
		return tasks
	}
	return filterTasks(tasks, func(t entity.Task) bool {
		return t.AssignedTo == user.ID
	})
}

func countByStatus(tasks []entity.Task) map[entity.TaskStatus]int {
	counts := make(map[entity.TaskStatus]int, len(entity.AllStatuses))
	for _, s := range entity.AllStatuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

func filterTasks(tasks []entity.Task, keep func(entity.Task) bool) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// matchesSearch matches the lowercased query as a substring of the title,
// the description or any tag.
func matchesSearch(t entity.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// matchesDeadline evaluates the deadline filter against now. Tasks without
// a due date never match any deadline filter.
func matchesDeadline(t entity.Task, filter DeadlineFilter, now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	due := *t.DueDate
	switch filter {
	case DeadlineToday:
		y1, m1, d1 := due.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case DeadlineThisWeek:
		weekFromNow := now.AddDate(0, 0, 7)
		return !due.Before(now) && !due.After(weekFromNow)
	case DeadlineOverdue:
		return due.Before(now) && t.Status != entity.StatusCompleted
	default:
		return true
	}
}

// sortTasks sorts in place. The sort is stable: ties keep their prior
// relative order. Tasks with no due date sort before any dated task under
// deadline sort (they take the zero time rather than being excluded).
func sortTasks(tasks []entity.Task, mode SortMode) {
	switch mode {
	case SortDeadline:
		sort.SliceStable(tasks, func(i, j int) bool {
			return dueOrZero(tasks[i]).Before(dueOrZero(tasks[j]))
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return rankOf(tasks[i].Priority) < rankOf(tasks[j].Priority)
		})
	default: // created_date, newest first
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

func dueOrZero(t entity.Task) time.Time {
	if t.DueDate == nil {
		return time.Time{}
	}
	return *t.DueDate
}

func rankOf(p entity.TaskPriority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}
