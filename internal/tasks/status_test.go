package tasks_test

import (
	"testing"

	"vibealong/internal/model"
	"vibealong/internal/tasks"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"open", model.StatusOpen},
		{"OPEN", model.StatusOpen},
		{" Todo ", model.StatusOpen},
		{"in_progress", model.StatusInProgress},
		{"In Progress", model.StatusInProgress},
		{"IN-PROGRESS", model.StatusInProgress},
		{"inprogress", model.StatusInProgress},
		{"Completed", model.StatusCompleted},
		{"done", model.StatusCompleted},
		{"archived", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tasks.NormalizeStatus(tt.in))
		})
	}
}

func TestFilter_MatchesNormalizedStatus(t *testing.T) {
	list := []model.Task{
		{Title: "a", Status: "open"},
		{Title: "b", Status: "In Progress"},
		{Title: "c", Status: "COMPLETED"},
		{Title: "d", Status: "in_progress"},
		{Title: "e", Status: "Open"},
		{Title: "f", Status: "mystery"},
	}

	titles := func(ts []model.Task) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.Title)
		}
		return out
	}

	assert.Equal(t, []string{"a", "e"}, titles(tasks.Filter(list, "open")))
	assert.Equal(t, []string{"b", "d"}, titles(tasks.Filter(list, "in_progress")))
	assert.Equal(t, []string{"c"}, titles(tasks.Filter(list, "completed")))
	assert.Len(t, tasks.Filter(list, tasks.TabAll), len(list))
	assert.Len(t, tasks.Filter(list, ""), len(list))

	for _, tab := range tasks.Tabs[1:] {
		for _, task := range tasks.Filter(list, tab) {
			assert.Equal(t, tab, tasks.NormalizeStatus(task.Status))
		}
	}
}

func TestCounts(t *testing.T) {
	list := []model.Task{{Status: "open"}, {Status: "done"}, {Status: "Done"}, {Status: "??"}}

	counts := tasks.Counts(list)

	assert.Equal(t, 4, counts[tasks.TabAll])
	assert.Equal(t, 1, counts[model.StatusOpen])
	assert.Equal(t, 0, counts[model.StatusInProgress])
	assert.Equal(t, 2, counts[model.StatusCompleted])
}

func TestValidTab(t *testing.T) {
	assert.True(t, tasks.ValidTab("all"))
	assert.True(t, tasks.ValidTab("In Progress"))
	assert.False(t, tasks.ValidTab("archived"))
}

func TestStatusForProgress(t *testing.T) {
	assert.Equal(t, model.StatusOpen, tasks.StatusForProgress(0))
	assert.Equal(t, model.StatusInProgress, tasks.StatusForProgress(35))
	assert.Equal(t, model.StatusCompleted, tasks.StatusForProgress(100))
}
