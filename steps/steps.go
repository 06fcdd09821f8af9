package steps

// Step is one of the four ordered form steps.
type Step int

const (
	Info    Step = 1
	Style   Step = 2
	Details Step = 3
	Review  Step = 4
)

var labels = map[Step]string{
	Info:    "Basic information",
	Style:   "Style and preferences",
	Details: "Project details",
	Review:  "Review",
}

func (s Step) Label() string { return labels[s] }

// Valid reports whether s is within the 1..4 range.
func (s Step) Valid() bool { return s >= Info && s <= Review }

// Sequencer is the linear four-state machine driving form navigation.
// Transitions are validation-free: required fields are highlighted by the
// front end but never block advancement.
type Sequencer struct {
	current Step
}

func NewSequencer() *Sequencer {
	return &Sequencer{current: Info}
}

func (s *Sequencer) Current() Step { return s.current }

// Next advances one step. From Review it is a no-op; submission is a
// terminal action there, not a transition.
func (s *Sequencer) Next() Step {
	if s.current < Review {
		s.current++
	}
	return s.current
}

// Back retreats one step. From Info it is a no-op.
func (s *Sequencer) Back() Step {
	if s.current > Info {
		s.current--
	}
	return s.current
}

// Resume jumps to a saved step when a draft is restored. Out-of-range values
// (a corrupt or foreign draft) clamp to the nearest valid step - no
// skip-ahead beyond Review, no step zero.
func (s *Sequencer) Resume(saved int) Step {
	step := Step(saved)
	if step < Info {
		step = Info
	}
	if step > Review {
		step = Review
	}
	s.current = step
	return s.current
}

// Reset returns to the first step.
func (s *Sequencer) Reset() {
	s.current = Info
}
