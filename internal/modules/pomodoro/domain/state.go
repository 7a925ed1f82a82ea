package domain

import "time"

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

const (
	MinWorkMinutes      = 1
	MaxWorkMinutes      = 120
	MinBreakMinutes     = 1
	MaxBreakMinutes     = 60
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

func ParsePhase(raw string) (Phase, bool) {
	switch Phase(raw) {
	case PhaseWork, PhaseBreak:
		return Phase(raw), true
	default:
		return "", false
	}
}

func (p Phase) Other() Phase {
	if p == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// State is the persisted interval timer. PhaseEndsAt is only kept while
// running in deadline resume mode.
type State struct {
	Phase            Phase      `json:"phase"`
	SecondsRemaining int        `json:"secondsRemaining"`
	WorkMinutes      int        `json:"workMinutes"`
	BreakMinutes     int        `json:"breakMinutes"`
	Running          bool       `json:"running"`
	PhaseEndsAt      *time.Time `json:"phaseEndsAt,omitempty"`
}

func NewState(workMinutes, breakMinutes int) State {
	s := State{
		Phase:        PhaseWork,
		WorkMinutes:  ClampWork(workMinutes),
		BreakMinutes: ClampBreak(breakMinutes),
	}
	s.SecondsRemaining = s.PhaseSeconds(PhaseWork)
	return s
}

func ClampWork(minutes int) int {
	return clamp(minutes, MinWorkMinutes, MaxWorkMinutes)
}

func ClampBreak(minutes int) int {
	return clamp(minutes, MinBreakMinutes, MaxBreakMinutes)
}

func (s State) PhaseSeconds(p Phase) int {
	if p == PhaseBreak {
		return s.BreakMinutes * 60
	}
	return s.WorkMinutes * 60
}

// MaxSeconds bounds SecondsRemaining.
func (s State) MaxSeconds() int {
	return max(s.WorkMinutes, s.BreakMinutes) * 60
}

// Tick advances one second. At one second or less the phase flips instead,
// and completed names the phase that just ended.
func (s State) Tick() (next State, completed Phase, flipped bool) {
	if !s.Running {
		return s, "", false
	}
	if s.SecondsRemaining <= 1 {
		next, completed = s.Flip()
		return next, completed, true
	}
	s.SecondsRemaining--
	return s, "", false
}

// Flip moves to the other phase with a full countdown.
func (s State) Flip() (State, Phase) {
	completed := s.Phase
	s.Phase = s.Phase.Other()
	s.SecondsRemaining = s.PhaseSeconds(s.Phase)
	return s, completed
}

// Normalize repairs a decoded state so every invariant holds.
func (s State) Normalize() State {
	s.WorkMinutes = ClampWork(s.WorkMinutes)
	s.BreakMinutes = ClampBreak(s.BreakMinutes)
	if _, ok := ParsePhase(string(s.Phase)); !ok {
		s.Phase = PhaseWork
		s.SecondsRemaining = s.PhaseSeconds(PhaseWork)
	}
	s.SecondsRemaining = clamp(s.SecondsRemaining, 0, s.MaxSeconds())
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
