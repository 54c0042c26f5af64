// Package checklist implements the toggleable step lists shown on task and
// collaboration pages.
package checklist

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

var ErrStepNotFound = errors.New("step not found")

type Step struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Checklist struct {
	Steps []Step `json:"steps"`
}

func New(steps []Step) *Checklist {
	if steps == nil {
		steps = []Step{}
	}
	return &Checklist{Steps: steps}
}

// NewSteps turns step texts into unchecked steps with fresh ids.
func NewSteps(texts []string) []Step {
	steps := make([]Step, 0, len(texts))
	for _, text := range texts {
		steps = append(steps, Step{ID: uuid.NewString(), Text: text})
	}
	return steps
}

// Toggle flips the completed flag of the step with the given id.
func (c *Checklist) Toggle(id string) (Step, error) {
	for i := range c.Steps {
		if c.Steps[i].ID == id {
			c.Steps[i].Completed = !c.Steps[i].Completed
			return c.Steps[i], nil
		}
	}
	return Step{}, ErrStepNotFound
}

func (c *Checklist) Append(steps ...Step) {
	c.Steps = append(c.Steps, steps...)
}

func (c *Checklist) CompletedCount() int {
	n := 0
	for _, s := range c.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}

// Percent is the share of completed steps, rounded; 0 for an empty list.
func (c *Checklist) Percent() int {
	if len(c.Steps) == 0 {
		return 0
	}
	return int(math.Round(float64(c.CompletedCount()) * 100 / float64(len(c.Steps))))
}
