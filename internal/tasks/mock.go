package tasks

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"vibealong/internal/model"
)

// MockTaskCount is how many sample tasks the fallback list holds.
const MockTaskCount = 5

var mockTaskIDs = [MockTaskCount]uuid.UUID{
	uuid.MustParse("6b1f9a52-8c1e-4d0a-9a51-0d5c2f1e7a01"),
	uuid.MustParse("6b1f9a52-8c1e-4d0a-9a51-0d5c2f1e7a02"),
	uuid.MustParse("6b1f9a52-8c1e-4d0a-9a51-0d5c2f1e7a03"),
	uuid.MustParse("6b1f9a52-8c1e-4d0a-9a51-0d5c2f1e7a04"),
	uuid.MustParse("6b1f9a52-8c1e-4d0a-9a51-0d5c2f1e7a05"),
}

// MockTasks builds the sample tasks. Dates are offsets from the given day so
// the same day always yields the same list.
func MockTasks(day time.Time) []model.Task {
	day = day.UTC().Truncate(24 * time.Hour)
	due := func(days int) *time.Time {
		d := day.AddDate(0, 0, days)
		return &d
	}
	summary := func(s string) *string { return &s }

	tasks := []model.Task{
		{
			Title:          "Fix authentication flow in Lovable app",
			Description:    "Users get stuck in a redirect loop after signing in with Google.",
			Status:         model.StatusOpen,
			Priority:       model.PriorityHigh,
			DueDate:        due(3),
			EstimatedHours: 4,
			EstimatedCost:  320,
			Requirements:   "Keep the existing Supabase project. Add a regression test for the callback.",
			TechStack:      pq.StringArray{"React", "Supabase", "TypeScript"},
			AISummary:      summary("OAuth callback drops the session cookie; likely a redirect URL mismatch."),
		},
		{
			Title:          "Connect Stripe checkout",
			Description:    "Add a subscription checkout to a Bolt-generated landing page.",
			Status:         model.StatusInProgress,
			Priority:       model.PriorityMedium,
			DueDate:        due(7),
			EstimatedHours: 6,
			EstimatedCost:  480,
			Requirements:   "Monthly and yearly plans, webhook to mark the account as paid.",
			TechStack:      pq.StringArray{"Next.js", "Stripe"},
			Progress:       40,
		},
		{
			Title:          "Optimize slow dashboard queries",
			Description:    "The analytics page takes 8 seconds to load with 10k rows.",
			Status:         model.StatusOpen,
			Priority:       model.PriorityUrgent,
			DueDate:        due(2),
			EstimatedHours: 5,
			EstimatedCost:  450,
			Requirements:   "Add indexes and paginate the table.",
			TechStack:      pq.StringArray{"PostgreSQL", "React"},
		},
		{
			Title:          "Make the v0 layout responsive",
			Description:    "Sidebar overlaps content on mobile screens.",
			Status:         model.StatusCompleted,
			Priority:       model.PriorityLow,
			DueDate:        due(-2),
			EstimatedHours: 2,
			EstimatedCost:  140,
			Requirements:   "Collapse the sidebar below 768px.",
			TechStack:      pq.StringArray{"Tailwind CSS", "React"},
			Progress:       100,
		},
		{
			Title:          "Deploy Replit project to production",
			Description:    "Move the app off Replit hosting onto a managed platform with a custom domain.",
			Status:         model.StatusInProgress,
			Priority:       model.PriorityMedium,
			DueDate:        due(10),
			EstimatedHours: 3,
			EstimatedCost:  240,
			Requirements:   "Zero downtime cutover, environment variables documented.",
			TechStack:      pq.StringArray{"Node.js", "Docker"},
			Progress:       70,
		},
	}

	for i := range tasks {
		tasks[i].ID = mockTaskIDs[i]
		tasks[i].CreatedAt = day.AddDate(0, 0, -(i + 1))
		tasks[i].UpdatedAt = tasks[i].CreatedAt
	}
	return tasks
}
