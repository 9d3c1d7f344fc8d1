package tween

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/matt-g-everett/ledtween/easing"
)

// Manager owns a set of tweens and drives them from a single clock. Tweens
// that complete are dropped; a tween whose callback fails is dropped too.
type Manager struct {
	registry *easing.Registry
	log      zerolog.Logger
	tweens   []*Tween

	// pass is the snapshot being ticked by Update; killed marks tweens from it
	// removed by a callback before the pass ends.
	pass   []*Tween
	killed map[*Tween]bool
}

// NewManager creates a Manager resolving eases in reg, or in easing.Default
// when reg is nil.
func NewManager(reg *easing.Registry, logger zerolog.Logger) *Manager {
	if reg == nil {
		reg = easing.Default
	}
	m := new(Manager)
	m.registry = reg
	m.log = logger
	return m
}

// Add builds a tween from cfg and schedules it.
func (m *Manager) Add(cfg Config) (*Tween, error) {
	t, err := NewWithRegistry(cfg, m.registry)
	if err != nil {
		return nil, err
	}
	m.tweens = append(m.tweens, t)
	m.log.Debug().
		Strs("keys", t.Keys()).
		Int("targets", len(t.targets)).
		Float64("duration", t.totalDuration).
		Msg("tween added")
	return t, nil
}

// Update ticks every tween once, in the order they were added. Later tweens
// writing the same property win. Callbacks may Add or Kill tweens; tweens
// added during the pass are first ticked by the next Update.
func (m *Manager) Update(timestamp, delta float64) error {
	list := m.tweens
	m.tweens = nil
	m.pass = list
	defer func() {
		m.pass = nil
		m.killed = nil
	}()

	var errs []error
	kept := make([]*Tween, 0, len(list))
	for _, t := range list {
		if m.killed[t] {
			continue
		}
		if err := t.Update(timestamp, delta); err != nil {
			m.log.Error().Err(err).Strs("keys", t.Keys()).Msg("tween callback failed")
			errs = append(errs, fmt.Errorf("tween %v: %w", t.Keys(), err))
			continue
		}
		if t.complete {
			m.log.Debug().Strs("keys", t.Keys()).Msg("tween complete")
			continue
		}
		kept = append(kept, t)
	}

	survivors := kept[:0]
	for _, t := range kept {
		if !m.killed[t] {
			survivors = append(survivors, t)
		}
	}
	m.tweens = append(survivors, m.tweens...)
	return errors.Join(errs...)
}

// Kill stops t and forgets it.
func (m *Manager) Kill(t *Tween) {
	t.Stop()
	if m.pass != nil {
		m.markKilled(t)
	}
	out := m.tweens[:0:0]
	for _, other := range m.tweens {
		if other != t {
			out = append(out, other)
		}
	}
	m.tweens = out
}

// KillAll stops and forgets every tween.
func (m *Manager) KillAll() {
	for _, t := range m.pass {
		t.Stop()
		m.markKilled(t)
	}
	for _, t := range m.tweens {
		t.Stop()
	}
	m.tweens = nil
}

func (m *Manager) markKilled(t *Tween) {
	if m.killed == nil {
		m.killed = make(map[*Tween]bool)
	}
	m.killed[t] = true
}

// Tweens returns the scheduled tweens. Called from a callback, it also lists
// the tweens of the pass in progress.
func (m *Manager) Tweens() []*Tween {
	out := make([]*Tween, 0, len(m.pass)+len(m.tweens))
	for _, t := range m.pass {
		if !m.killed[t] {
			out = append(out, t)
		}
	}
	return append(out, m.tweens...)
}

func (m *Manager) Len() int { return len(m.Tweens()) }
