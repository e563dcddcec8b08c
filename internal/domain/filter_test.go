package domain

import "testing"

func fixtureTasks() []Task {
	desc := "monthly report for the team"
	return []Task{
		{ID: "1", Title: "Buy milk", Priority: PriorityLow, Category: CategoryShopping},
		{ID: "2", Title: "Write report", Description: &desc, Priority: PriorityHigh, Category: CategoryWork},
		{ID: "3", Title: "Pay rent", Priority: PriorityUrgent, Category: CategoryFinance},
	}
}

func applyTaskFilter(tasks []Task, f TaskFilter) []Task {
	var out []Task
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func titles(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestTaskFilterFreeText(t *testing.T) {
	got := applyTaskFilter(fixtureTasks(), TaskFilter{Search: "pay"})
	if len(got) != 1 || got[0].Title != "Pay rent" {
		t.Fatalf("search %q: expected [Pay rent], got %v", "pay", titles(got))
	}

	// Description participates in the match too.
	got = applyTaskFilter(fixtureTasks(), TaskFilter{Search: "MONTHLY"})
	if len(got) != 1 || got[0].Title != "Write report" {
		t.Fatalf("search over description failed, got %v", titles(got))
	}
}

func TestTaskFilterStatus(t *testing.T) {
	got := applyTaskFilter(fixtureTasks(), TaskFilter{Status: StatusCompleted})
	if len(got) != 0 {
		t.Fatalf("no task is completed, expected empty result, got %v", titles(got))
	}

	got = applyTaskFilter(fixtureTasks(), TaskFilter{Status: StatusPending})
	if len(got) != 3 {
		t.Fatalf("all tasks pending, expected 3, got %d", len(got))
	}
}

func TestTaskFilterAllSentinel(t *testing.T) {
	got := applyTaskFilter(fixtureTasks(), NewTaskFilter())
	if len(got) != 3 {
		t.Fatalf("\"all\" must bypass every dimension, got %d of 3", len(got))
	}
}

func TestTaskFilterExactMatch(t *testing.T) {
	got := applyTaskFilter(fixtureTasks(), TaskFilter{Priority: "urgent"})
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("priority filter: got %v", titles(got))
	}

	got = applyTaskFilter(fixtureTasks(), TaskFilter{Category: "work", Priority: FilterAll})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("category filter: got %v", titles(got))
	}
}

func TestStudentFilter(t *testing.T) {
	students := []Student{
		{ID: 1, Name: "Ada Lovelace", Email: "ada@maths.org", Age: 28},
		{ID: 2, Name: "Grace Hopper", Email: "grace@navy.mil", Age: 35},
	}

	f := StudentFilter{Search: "ADA"}
	if !f.Matches(students[0]) || f.Matches(students[1]) {
		t.Fatal("name match should be case-insensitive")
	}

	f = StudentFilter{Search: "navy"}
	if f.Matches(students[0]) || !f.Matches(students[1]) {
		t.Fatal("email should participate in the match")
	}

	f = StudentFilter{}
	if !f.Matches(students[0]) || !f.Matches(students[1]) {
		t.Fatal("empty search matches everything")
	}
}
