package content_test

import (
	"testing"
	"time"

	"vibealong/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, slug := range []string{"landing", "for-developers", "vibe-coders", "showcase", "demo"} {
		t.Run(slug, func(t *testing.T) {
			page, err := content.Get(slug)
			require.NoError(t, err)
			assert.Equal(t, slug, page.Slug)
			assert.NotEmpty(t, page.Headline)
			assert.NotEmpty(t, page.CTAs)
		})
	}

	root, err := content.Get("/")
	require.NoError(t, err)
	assert.Equal(t, "landing", root.Slug)

	_, err = content.Get("pricing")
	assert.ErrorIs(t, err, content.ErrPageNotFound)
}

func TestDemoSteps(t *testing.T) {
	steps := content.DemoSteps()
	require.Len(t, steps, 6)

	steps[0].Title = "changed"
	assert.NotEqual(t, "changed", content.DemoSteps()[0].Title)
}

func TestMockEarnings(t *testing.T) {
	// Thursday
	now := time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC)

	e := content.MockEarnings(now)

	require.Len(t, e.Weekly, 8)
	assert.Equal(t, "2025-03-10", e.Weekly[7].Date)
	assert.Equal(t, "2025-01-20", e.Weekly[0].Date)
	assert.InDelta(t, 6077.5, e.Total, 0.001)
	assert.InDelta(t, 980+760+1320+890, e.ThisMonth, 0.001)
	assert.Equal(t, e, content.MockEarnings(now))
}

func TestMockAnalytics(t *testing.T) {
	// Sunday belongs to the week starting the Monday before.
	now := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)

	a := content.MockAnalytics(now)

	require.Len(t, a.ProfileViews, 8)
	assert.Equal(t, "2025-03-10", a.ProfileViews[7].Date)
	assert.Len(t, a.TaskMatches, 8)
	assert.InDelta(t, 4.8, a.AverageRating, 0.001)
}
