package demo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("demo session not found")

const sessionTTL = time.Hour

type session struct {
	player  *Player
	entry   cron.EntryID
	created time.Time
}

// Scheduler owns the demo sessions of this process and their auto-play
// cron entries.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	spec     string
	sessions map[string]*session
	log      *zap.Logger
}

func NewScheduler(interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		spec:     "@every " + interval.String(),
		sessions: make(map[string]*session),
		log:      log,
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("🎬 Demo scheduler started", zap.String("schedule", s.spec))
}

// Stop halts the cron loop and waits for running ticks.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Create registers a new paused session at step 0.
func (s *Scheduler) Create(total int) (string, State, error) {
	p, err := NewPlayer(total)
	if err != nil {
		return "", State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	id := uuid.NewString()
	s.sessions[id] = &session{player: p, created: time.Now()}
	return id, p.State(), nil
}

func (s *Scheduler) State(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	return sess.player.State(), nil
}

// Play starts auto-advance. The cron entry removes itself once the player
// reaches its last step.
func (s *Scheduler) Play(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if !sess.player.Play() || sess.entry != 0 {
		return sess.player.State(), nil
	}

	entry, err := s.cron.AddFunc(s.spec, func() { s.tick(id) })
	if err != nil {
		sess.player.Pause()
		return State{}, fmt.Errorf("schedule demo %s: %w", id, err)
	}
	sess.entry = entry
	return sess.player.State(), nil
}

func (s *Scheduler) Pause(id string) (State, error) {
	return s.manual(id, func(p *Player) error {
		p.Pause()
		return nil
	})
}

func (s *Scheduler) GoTo(id string, step int) (State, error) {
	return s.manual(id, func(p *Player) error { return p.GoTo(step) })
}

func (s *Scheduler) Reset(id string) (State, error) {
	return s.manual(id, func(p *Player) error {
		p.Reset()
		return nil
	})
}

func (s *Scheduler) manual(id string, fn func(*Player) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if err := fn(sess.player); err != nil {
		return State{}, err
	}
	s.unscheduleLocked(sess)
	return sess.player.State(), nil
}

func (s *Scheduler) tick(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.entry == 0 {
		return
	}
	if !sess.player.Advance() {
		s.unscheduleLocked(sess)
		s.log.Debug("demo finished", zap.String("session", id), zap.Int("step", sess.player.State().Current))
	}
}

func (s *Scheduler) unscheduleLocked(sess *session) {
	if sess.entry != 0 {
		s.cron.Remove(sess.entry)
		sess.entry = 0
	}
}

func (s *Scheduler) pruneLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.created) > sessionTTL {
			s.unscheduleLocked(sess)
			delete(s.sessions, id)
		}
	}
}
