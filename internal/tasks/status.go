package tasks

import (
	"strings"

	"vibealong/internal/model"
)

// TabAll is the filter tab that shows every task.
const TabAll = "all"

// Tabs lists the filter tabs in display order.
var Tabs = []string{TabAll, model.StatusOpen, model.StatusInProgress, model.StatusCompleted}

// NormalizeStatus maps the status spellings found in stored and mock data onto
// the three canonical statuses. Unknown values normalize to "".
func NormalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)

	switch s {
	case "open", "todo", "to_do", "pending", "new":
		return model.StatusOpen
	case "in_progress", "inprogress", "active", "started":
		return model.StatusInProgress
	case "completed", "complete", "done", "closed":
		return model.StatusCompleted
	}
	return ""
}

// ValidTab reports whether tab is a known filter tab.
func ValidTab(tab string) bool {
	if tab == "" || tab == TabAll {
		return true
	}
	return NormalizeStatus(tab) != ""
}

// Filter returns the tasks shown under tab, preserving order.
func Filter(tasks []model.Task, tab string) []model.Task {
	if tab == "" || tab == TabAll {
		return tasks
	}
	want := NormalizeStatus(tab)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if NormalizeStatus(t.Status) == want {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the badge count for every tab.
func Counts(tasks []model.Task) map[string]int {
	counts := map[string]int{TabAll: len(tasks)}
	for _, tab := range Tabs[1:] {
		counts[tab] = 0
	}
	for _, t := range tasks {
		if s := NormalizeStatus(t.Status); s != "" {
			counts[s]++
		}
	}
	return counts
}

// StatusForProgress derives the status implied by a progress percentage.
func StatusForProgress(progress int) string {
	switch {
	case progress >= 100:
		return model.StatusCompleted
	case progress > 0:
		return model.StatusInProgress
	default:
		return model.StatusOpen
	}
}
