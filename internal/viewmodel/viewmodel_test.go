package viewmodel

import (
	"fmt"
	"testing"
	"time"

	"github.com/Atharva2908/task-manager/internal/entity"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func ts(daysFromNow int) *time.Time {
	t := testNow.AddDate(0, 0, daysFromNow)
	return &t
}

func makeTask(id string, mods ...func(*entity.Task)) entity.Task {
	t := entity.Task{
		ID:         id,
		Title:      "Task " + id,
		Status:     entity.StatusTodo,
		Priority:   entity.PriorityMedium,
		AssignedTo: "u1",
		CreatedAt:  testNow.Add(-24 * time.Hour),
	}
	for _, m := range mods {
		m(&t)
	}
	return t
}

func employee(id string) *entity.User {
	return &entity.User{ID: id, Name: "Employee", Role: entity.RoleEmployee}
}

func manager() *entity.User {
	return &entity.User{ID: "m1", Name: "Manager", Role: entity.RoleManager}
}

func TestRoleScopingEmployee(t *testing.T) {
	tasks := []entity.Task{
		makeTask("1", func(t *entity.Task) { t.AssignedTo = "u1" }),
		makeTask("2", func(t *entity.Task) { t.AssignedTo = "u2" }),
		makeTask("3", func(t *entity.Task) { t.AssignedTo = "u1" }),
	}

	res := Compute(tasks, employee("u1"), DefaultViewState(), testNow)

	if res.TotalMatching != 2 {
		t.Fatalf("expected 2 tasks for employee u1, got %d", res.TotalMatching)
	}
	for _, task := range res.PageItems {
		if task.AssignedTo != "u1" {
			t.Errorf("employee received foreign task %s assigned to %s", task.ID, task.AssignedTo)
		}
	}
}

func TestRoleScopingManagerSeesAll(t *testing.T) {
	tasks := []entity.Task{
		makeTask("1", func(t *entity.Task) { t.AssignedTo = "u1" }),
		makeTask("2", func(t *entity.Task) { t.AssignedTo = "u2" }),
	}

	res := Compute(tasks, manager(), DefaultViewState(), testNow)
	if res.TotalMatching != 2 {
		t.Errorf("expected manager to see all 2 tasks, got %d", res.TotalMatching)
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	tasks := []entity.Task{
		makeTask("1", func(t *entity.Task) { t.Title = "Fix Login Bug" }),
	}

	cases := []struct {
		search string
		want   int
	}{
		{"login", 1},
		{"LOGIN", 1},
		{"fix login", 1},
		{"logout", 0},
	}
	for _, tc := range cases {
		state := DefaultViewState()
		state.Search = tc.search
		res := Compute(tasks, manager(), state, testNow)
		if res.TotalMatching != tc.want {
			t.Errorf("search %q: expected %d matches, got %d", tc.search, tc.want, res.TotalMatching)
		}
	}
}

func TestSearchMatchesDescriptionAndTags(t *testing.T) {
	tasks := []entity.Task{
		makeTask("1", func(t *entity.Task) { t.Description = "Update the billing pipeline" }),
		makeTask("2", func(t *entity.Task) { t.Tags = []string{"Billing", "urgent-fix"} }),
		makeTask("3"),
	}

	state := DefaultViewState()
	state.Search = "billing"
	res := Compute(tasks, manager(), state, testNow)
	if res.TotalMatching != 2 {
		t.Errorf("expected 2 matches on description/tags, got %d", res.TotalMatching)
	}
}

func TestStatusAndPriorityFiltersCommute(t *testing.T) {
	tasks := []entity.Task{
		makeTask("1", func(t *entity.Task) {
			t.Status = entity.StatusInProgress
			t.Priority = entity.PriorityHigh
		}),
		makeTask("2", func(t *entity.Task) { t.Status = entity.StatusInProgress }),
		makeTask("3", func(t *entity.Task) { t.Priority = entity.PriorityHigh }),
		makeTask("4"),
	}

	state := DefaultViewState()
	state.Status = string(entity.StatusInProgress)
	state.Priority = string(entity.PriorityHigh)
	res := Compute(tasks, manager(), state, testNow)

	if res.TotalMatching != 1 || res.PageItems[0].ID != "1" {
		t.Errorf("expected only task 1 to pass both filters, got %d matches", res.TotalMatching)
	}
}

func TestDeadlineFilters(t *testing.T) {
	tasks := []entity.Task{
		makeTask("today", func(t *entity.Task) {
			d := testNow.Add(3 * time.Hour)
			t.DueDate = &d
		}),
		makeTask("week", func(t *entity.Task) { t.DueDate = ts(5) }),
		makeTask("far", func(t *entity.Task) { t.DueDate = ts(30) }),
		makeTask("overdue", func(t *entity.Task) { t.DueDate = ts(-2) }),
		makeTask("done-overdue", func(t *entity.Task) {
			t.DueDate = ts(-2)
			t.Status = entity.StatusCompleted
		}),
		makeTask("no-due"),
	}

	cases := []struct {
		filter DeadlineFilter
		want   []string
	}{
		{DeadlineToday, []string{"today"}},
		{DeadlineThisWeek, []string{"today", "week"}},
		{DeadlineOverdue, []string{"overdue"}},
	}
	for _, tc := range cases {
		state := DefaultViewState()
		state.Deadline = tc.filter
		res := Compute(tasks, manager(), state, testNow)
		if res.TotalMatching != len(tc.want) {
			t.Errorf("deadline %q: expected %d matches, got %d", tc.filter, len(tc.want), res.TotalMatching)
			continue
		}
		got := make(map[string]bool, len(res.PageItems))
		for _, task := range res.PageItems {
			got[task.ID] = true
		}
		for _, id := range tc.want {
			if !got[id] {
				t.Errorf("deadline %q: expected task %s in result", tc.filter, id)
			}
		}
	}
}

func TestNoDueDateNeverOverdueFiltered(t *testing.T) {
	for _, status := range entity.AllStatuses {
		task := makeTask("1", func(t *entity.Task) { t.Status = status })
		state := DefaultViewState()
		state.Deadline = DeadlineOverdue
		res := Compute([]entity.Task{task}, manager(), state, testNow)
		if res.TotalMatching != 0 {
			t.Errorf("task with no due date and status %s matched overdue filter", status)
		}
	}
}

func TestSortByDeadlineMissingDueFirst(t *testing.T) {
	tasks := []entity.Task{
		makeTask("later", func(t *entity.Task) { t.DueDate = ts(10) }),
		makeTask("none"),
		makeTask("soon", func(t *entity.Task) { t.DueDate = ts(1) }),
	}

	state := DefaultViewState()
	state.SortBy = SortDeadline
	res := Compute(tasks, manager(), state, testNow)

	want := []string{"none", "soon", "later"}
	for i, id := range want {
		if res.PageItems[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, res.PageItems[i].ID)
		}
	}
}

func TestSortByPriority(t *testing.T) {
	tasks := []entity.Task{
		makeTask("low", func(t *entity.Task) { t.Priority = entity.PriorityLow }),
		makeTask("unknown", func(t *entity.Task) { t.Priority = "critical" }),
		makeTask("urgent", func(t *entity.Task) { t.Priority = entity.PriorityUrgent }),
		makeTask("medium", func(t *entity.Task) { t.Priority = entity.PriorityMedium }),
		makeTask("high", func(t *entity.Task) { t.Priority = entity.PriorityHigh }),
	}

	state := DefaultViewState()
	state.SortBy = SortPriority
	res := Compute(tasks, manager(), state, testNow)

	want := []string{"urgent", "high", "medium", "low", "unknown"}
	for i, id := range want {
		if res.PageItems[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, res.PageItems[i].ID)
		}
	}
}

func TestSortStabilityOnEqualCreatedAt(t *testing.T) {
	created := testNow.Add(-time.Hour)
	var tasks []entity.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, makeTask(fmt.Sprintf("%d", i), func(t *entity.Task) {
			t.CreatedAt = created
		}))
	}

	res := Compute(tasks, manager(), DefaultViewState(), testNow)
	for i, task := range res.PageItems {
		if task.ID != fmt.Sprintf("%d", i) {
			t.Fatalf("stable sort broke tie order: position %d holds %s", i, task.ID)
		}
	}
}

func TestSortCreatedDateNewestFirst(t *testing.T) {
	tasks := []entity.Task{
		makeTask("old", func(t *entity.Task) { t.CreatedAt = testNow.Add(-48 * time.Hour) }),
		makeTask("new", func(t *entity.Task) { t.CreatedAt = testNow.Add(-1 * time.Hour) }),
		makeTask("mid", func(t *entity.Task) { t.CreatedAt = testNow.Add(-24 * time.Hour) }),
	}

	res := Compute(tasks, manager(), DefaultViewState(), testNow)
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if res.PageItems[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, res.PageItems[i].ID)
		}
	}
}

func TestPaginationCoversAllExactlyOnce(t *testing.T) {
	var tasks []entity.Task
	for i := 0; i < 23; i++ {
		tasks = append(tasks, makeTask(fmt.Sprintf("%d", i), func(t *entity.Task) {
			t.CreatedAt = testNow.Add(-time.Duration(i) * time.Hour)
		}))
	}

	state := DefaultViewState()
	state.PageSize = 5

	seen := make(map[string]int)
	var ordered []string
	first := Compute(tasks, manager(), state, testNow)
	if first.TotalPages != 5 {
		t.Fatalf("expected 5 pages for 23 tasks at pageSize 5, got %d", first.TotalPages)
	}
	for page := 1; page <= first.TotalPages; page++ {
		state.Page = page
		res := Compute(tasks, manager(), state, testNow)
		for _, task := range res.PageItems {
			seen[task.ID]++
			ordered = append(ordered, task.ID)
		}
	}

	if len(ordered) != len(tasks) {
		t.Fatalf("pages concatenate to %d items, want %d", len(ordered), len(tasks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("task %s appeared %d times across pages", id, n)
		}
	}
}

func TestPageBeyondRangeIsEmptyNotClamped(t *testing.T) {
	tasks := []entity.Task{makeTask("1"), makeTask("2")}

	state := DefaultViewState()
	state.Page = 7
	res := Compute(tasks, manager(), state, testNow)

	if len(res.PageItems) != 0 {
		t.Errorf("expected empty page beyond range, got %d items", len(res.PageItems))
	}
	if res.TotalMatching != 2 || res.TotalPages != 1 {
		t.Errorf("totals wrong: matching=%d pages=%d", res.TotalMatching, res.TotalPages)
	}
}

func TestPageSizeGuardedToMinimumOne(t *testing.T) {
	tasks := []entity.Task{makeTask("1"), makeTask("2")}

	state := DefaultViewState()
	state.PageSize = 0
	res := Compute(tasks, manager(), state, testNow)

	if res.PageSize != 1 || len(res.PageItems) != 1 {
		t.Errorf("expected pageSize guard of 1, got size=%d items=%d", res.PageSize, len(res.PageItems))
	}
}

func TestCompletedFilterScenario(t *testing.T) {
	var tasks []entity.Task
	for i := 0; i < 12; i++ {
		status := entity.StatusTodo
		if i < 3 {
			status = entity.StatusCompleted
		}
		tasks = append(tasks, makeTask(fmt.Sprintf("%d", i), func(t *entity.Task) {
			t.Status = status
		}))
	}

	state := DefaultViewState()
	state.Status = string(entity.StatusCompleted)
	res := Compute(tasks, manager(), state, testNow)

	if res.TotalMatching != 3 || res.TotalPages != 1 || len(res.PageItems) != 3 {
		t.Errorf("expected 3/1/3, got matching=%d pages=%d items=%d",
			res.TotalMatching, res.TotalPages, len(res.PageItems))
	}
}

func TestStatusCountsOverScopedPreFilterSet(t *testing.T) {
	tasks := []entity.Task{
		makeTask("1", func(t *entity.Task) { t.Status = entity.StatusCompleted }),
		makeTask("2", func(t *entity.Task) { t.Status = entity.StatusInProgress }),
		makeTask("3", func(t *entity.Task) { t.Status = entity.StatusInProgress }),
		makeTask("4", func(t *entity.Task) {
			t.Status = entity.StatusTodo
			t.AssignedTo = "other"
		}),
	}

	// counts ignore the active status filter but honor role scoping
	state := DefaultViewState()
	state.Status = string(entity.StatusCompleted)
	res := Compute(tasks, employee("u1"), state, testNow)

	if res.StatusCounts[entity.StatusInProgress] != 2 {
		t.Errorf("expected in_progress count 2, got %d", res.StatusCounts[entity.StatusInProgress])
	}
	if res.StatusCounts[entity.StatusTodo] != 0 {
		t.Errorf("foreign task leaked into counts: todo=%d", res.StatusCounts[entity.StatusTodo])
	}
	if res.TotalMatching != 1 {
		t.Errorf("expected 1 completed match, got %d", res.TotalMatching)
	}
}

func TestIsOverdue(t *testing.T) {
	past := ts(-1)
	future := ts(1)

	cases := []struct {
		name string
		task entity.Task
		want bool
	}{
		{"completed with past due", makeTask("1", func(t *entity.Task) {
			t.Status = entity.StatusCompleted
			t.DueDate = past
		}), false},
		{"todo with past due", makeTask("2", func(t *entity.Task) { t.DueDate = past }), true},
		{"todo with future due", makeTask("3", func(t *entity.Task) { t.DueDate = future }), false},
		{"no due date", makeTask("4"), false},
	}
	for _, tc := range cases {
		if got := IsOverdue(tc.task, testNow); got != tc.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	tasks := []entity.Task{
		makeTask("b", func(t *entity.Task) { t.CreatedAt = testNow.Add(-2 * time.Hour) }),
		makeTask("a", func(t *entity.Task) { t.CreatedAt = testNow.Add(-1 * time.Hour) }),
	}

	Compute(tasks, manager(), DefaultViewState(), testNow)

	if tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Error("Compute reordered the caller's slice")
	}
}

func TestComputeEmptyInput(t *testing.T) {
	res := Compute(nil, nil, DefaultViewState(), testNow)
	if res.TotalMatching != 0 || res.TotalPages != 0 || len(res.PageItems) != 0 {
		t.Errorf("expected empty result for nil input, got %+v", res)
	}
}
