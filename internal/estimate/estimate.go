// Package estimate holds the task pricing and step suggestion features.
// Handlers only see the interfaces; the mock implementations return canned
// answers after a delay.
package estimate

import (
	"context"
	"time"
)

// Input is what the task submission form knows about a task.
type Input struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	TechStack    []string `json:"tech_stack"`
	Platform     string   `json:"platform"`
}

type Estimate struct {
	Hours      float64  `json:"hours"`
	HourlyRate float64  `json:"hourly_rate"`
	Cost       float64  `json:"cost"`
	Complexity string   `json:"complexity"`
	Confidence float64  `json:"confidence"`
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
}

type Estimator interface {
	EstimateTask(ctx context.Context, in Input) (Estimate, error)
}

type StepGenerator interface {
	GenerateSteps(ctx context.Context, in Input) ([]string, error)
}

// MockEstimator answers every request with the same estimate.
type MockEstimator struct {
	Delay time.Duration
}

func (m MockEstimator) EstimateTask(ctx context.Context, _ Input) (Estimate, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return Estimate{}, err
	}
	return Estimate{
		Hours:      6,
		HourlyRate: 75,
		Cost:       450,
		Complexity: "medium",
		Confidence: 0.8,
		Summary:    "Moderate change touching the frontend and one backend integration.",
		Skills:     []string{"React", "TypeScript", "API integration"},
	}, nil
}

// MockStepGenerator answers every request with the same step list.
type MockStepGenerator struct {
	Delay time.Duration
}

func (m MockStepGenerator) GenerateSteps(ctx context.Context, _ Input) ([]string, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return nil, err
	}
	return []string{
		"Review the current codebase and project structure",
		"Reproduce the issue in a local environment",
		"Implement the required changes",
		"Test the changes across supported browsers",
		"Deploy and walk the vibe coder through the result",
	}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
