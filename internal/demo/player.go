// Package demo drives the product tour carousel. A Player holds the step
// position; the Scheduler auto-advances players on a cron entry.
package demo

import (
	"errors"
	"sync"
)

var (
	ErrNoSteps     = errors.New("demo needs at least one step")
	ErrStepOutside = errors.New("demo step out of range")
)

type Player struct {
	mu      sync.Mutex
	current int
	total   int
	playing bool
}

func NewPlayer(total int) (*Player, error) {
	if total < 1 {
		return nil, ErrNoSteps
	}
	return &Player{total: total}, nil
}

// Advance moves one step forward and reports whether the player is still
// running. It stops itself on the last step and never moves past it.
func (p *Player) Advance() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total-1 {
		p.current++
	}
	if p.current >= p.total-1 {
		p.playing = false
	}
	return p.playing
}

func (p *Player) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = p.current < p.total-1
	return p.playing
}

func (p *Player) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

// GoTo jumps to a step and pauses, the way a manual click does.
func (p *Player) GoTo(step int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if step < 0 || step >= p.total {
		return ErrStepOutside
	}
	p.current = step
	p.playing = false
	return nil
}

func (p *Player) Reset() {
	p.mu.Lock()
	p.current = 0
	p.playing = false
	p.mu.Unlock()
}

type State struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	Playing bool `json:"playing"`
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{Current: p.current, Total: p.total, Playing: p.playing}
}
