// Package inquiry models the contact form lifecycle: a visitor fills the form, submits it,
// waits through a simulated send, then sees a confirmation until they start over.
package inquiry

import (
	"errors"
	"html"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// DefaultSubmitDelay is how long a submission stays in Submitting.
const DefaultSubmitDelay = 1500 * time.Millisecond

// ErrInvalidTransition is returned when an operation is not allowed in the current state.
var ErrInvalidTransition = errors.New("inquiry: invalid state transition")

// State is a position in the submission lifecycle.
type State int

const (
	Idle State = iota
	Submitting
	Submitted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

var messagePolicy = bluemonday.StrictPolicy()

// sanitizeMessage strips markup and returns plain text; templates escape it on output.
func sanitizeMessage(raw string) string {
	return html.UnescapeString(messagePolicy.Sanitize(raw))
}

// Snapshot is a consistent copy of a submission's state.
type Snapshot struct {
	State       State
	Form        Form
	ID          string
	StartedAt   time.Time
	SubmittedAt time.Time
}

// Submission is one visitor's contact form. It is safe for concurrent use.
type Submission struct {
	clock  Clock
	delay  time.Duration
	logger *zap.Logger

	mu          sync.Mutex
	state       State
	form        Form
	id          string
	startedAt   time.Time
	submittedAt time.Time
	timer       Timer
	gen         uint64
	done        chan struct{}
}

// NewSubmission returns an idle submission. A nil clock uses the wall clock and a
// non-positive delay uses DefaultSubmitDelay.
func NewSubmission(clock Clock, delay time.Duration, logger *zap.Logger) *Submission {
	if clock == nil {
		clock = SystemClock{}
	}
	if delay <= 0 {
		delay = DefaultSubmitDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submission{
		clock:  clock,
		delay:  delay,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Submit validates form and, if it is complete, moves Idle to Submitting. The transition to
// Submitted happens once the delay has fully elapsed. An invalid form leaves the submission
// Idle with the entered values kept and returns a *ValidationError.
func (s *Submission) Submit(form Form) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return "", ErrInvalidTransition
	}
	form.Message = sanitizeMessage(form.Message)
	s.form = form
	if err := form.Validate(); err != nil {
		return "", err
	}

	s.gen++
	gen := s.gen
	s.state = Submitting
	s.id = ulid.Make().String()
	s.startedAt = s.clock.Now()
	s.timer = s.clock.AfterFunc(s.delay, func() { s.complete(gen) })

	s.logger.Info("inquiry submitting",
		zap.String("inquiry_id", s.id),
		zap.String("industry", form.Industry),
		zap.Int("message_len", len(form.Message)),
		zap.Duration("delay", s.delay),
	)
	return s.id, nil
}

func (s *Submission) complete(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state != Submitting {
		return
	}
	s.state = Submitted
	s.submittedAt = s.clock.Now()
	s.timer = nil
	close(s.done)
	s.logger.Info("inquiry submitted",
		zap.String("inquiry_id", s.id),
		zap.Duration("elapsed", s.submittedAt.Sub(s.startedAt)),
	)
}

// Cancel aborts a pending send and returns to Idle with the fields kept.
func (s *Submission) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Submitting {
		return ErrInvalidTransition
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.state = Idle
	s.logger.Info("inquiry cancelled", zap.String("inquiry_id", s.id))
	s.id = ""
	s.startedAt = time.Time{}
	return nil
}

// Reset moves Submitted back to Idle and clears every field.
func (s *Submission) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Submitted {
		return ErrInvalidTransition
	}
	s.gen++
	s.state = Idle
	s.form = Form{}
	s.id = ""
	s.startedAt = time.Time{}
	s.submittedAt = time.Time{}
	s.done = make(chan struct{})
	return nil
}

// Snapshot returns the current state and fields.
func (s *Submission) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:       s.state,
		Form:        s.form,
		ID:          s.id,
		StartedAt:   s.startedAt,
		SubmittedAt: s.submittedAt,
	}
}

// State returns the current lifecycle state.
func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done returns a channel closed when the current submission reaches Submitted.
func (s *Submission) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Submission) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Submitting
}
