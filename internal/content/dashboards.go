package content

import "time"

type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type ProjectEarning struct {
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
	Amount  float64 `json:"amount"`
}

type Earnings struct {
	Currency   string           `json:"currency"`
	Total      float64          `json:"total"`
	Pending    float64          `json:"pending"`
	ThisMonth  float64          `json:"this_month"`
	Weekly     []Point          `json:"weekly"`
	ByProject  []ProjectEarning `json:"by_project"`
	HourlyRate float64          `json:"hourly_rate"`
}

type Analytics struct {
	ProfileViews   []Point `json:"profile_views"`
	TaskMatches    []Point `json:"task_matches"`
	ResponseRate   float64 `json:"response_rate"`
	CompletionRate float64 `json:"completion_rate"`
	AverageRating  float64 `json:"average_rating"`
}

var (
	weeklyEarnings = []float64{620, 840, 410, 1150, 980, 760, 1320, 890}
	weeklyViews    = []float64{34, 41, 29, 56, 63, 48, 71, 66}
	weeklyMatches  = []float64{3, 5, 2, 6, 7, 4, 8, 6}
)

// MockEarnings returns the developer earnings dashboard. The series ends on
// the week containing now; the amounts are fixed.
func MockEarnings(now time.Time) Earnings {
	byProject := []ProjectEarning{
		{"Recipe Roulette payments", 22, 1870},
		{"TutorMatch booking fixes", 31, 2635},
		{"FieldNotes sync", 18.5, 1572.5},
	}
	var total float64
	for _, p := range byProject {
		total += p.Amount
	}
	weekly := series(now, weeklyEarnings)
	var month float64
	for _, p := range weekly[len(weekly)-4:] {
		month += p.Value
	}
	return Earnings{
		Currency:   "USD",
		Total:      total,
		Pending:    890,
		ThisMonth:  month,
		Weekly:     weekly,
		ByProject:  byProject,
		HourlyRate: 85,
	}
}

func MockAnalytics(now time.Time) Analytics {
	return Analytics{
		ProfileViews:   series(now, weeklyViews),
		TaskMatches:    series(now, weeklyMatches),
		ResponseRate:   0.92,
		CompletionRate: 0.87,
		AverageRating:  4.8,
	}
}

// series dates values weekly, the last one on the Monday of now's week.
func series(now time.Time, values []float64) []Point {
	day := now.UTC().Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)

	points := make([]Point, len(values))
	for i, v := range values {
		week := monday.AddDate(0, 0, -7*(len(values)-1-i))
		points[i] = Point{Date: week.Format(time.DateOnly), Value: v}
	}
	return points
}
