package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/utils"
)

// navigationPolicy fixes the {mode} x {direction} x {answered} rules.
// Forward navigation is gated on an answer in testing and exam mode;
// learning mode paces itself and allows no backward jumps.
type navigationPolicy struct {
	forwardRequiresAnswer bool
	allowBackward         bool
}

func policyFor(mode models.QuizMode) navigationPolicy {
	switch mode {
	case models.ModeTesting, models.ModeExam:
		return navigationPolicy{forwardRequiresAnswer: true, allowBackward: true}
	default:
		return navigationPolicy{}
	}
}

// CompletionFunc receives the frozen session and its score when a
// submit transition fires. autoSubmitted marks timer-driven submits.
type CompletionFunc func(snapshot models.SessionSnapshot, score *models.ScoreSummary, autoSubmitted bool)

// Session drives one quiz attempt through setup -> active -> results.
// All methods are safe for concurrent use; the countdown goroutine
// and HTTP handlers share one session.
type Session struct {
	mu sync.Mutex

	id        string
	state     models.SessionState
	mode      models.QuizMode
	questions []models.Question
	answers   []int
	current   int
	startedAt time.Time

	// exam countdown
	examDuration  time.Duration
	timeRemaining int
	timerStop     chan struct{}
	timerStopped  bool

	// one-shot guard: queued ticks after expiry must not double-submit
	submitted bool

	onStarted   func(models.SessionSnapshot)
	onCompleted CompletionFunc
}

func (s *Session) ID() string { return s.id }

// Start transitions setup -> active with a fixed question sequence.
// In exam mode it also starts the countdown.
func (s *Session) Start(questions []models.Question, mode models.QuizMode) error {
	s.mu.Lock()

	if s.state != models.SessionSetup {
		s.mu.Unlock()
		return ErrSessionNotInSetup
	}
	if len(questions) == 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot start a quiz without questions", ErrInvalidInput)
	}
	if !mode.IsValid() {
		s.mu.Unlock()
		return fmt.Errorf("%w: unknown quiz mode %q", ErrInvalidInput, mode)
	}

	s.questions = questions
	s.mode = mode
	s.answers = make([]int, len(questions))
	for i := range s.answers {
		s.answers[i] = models.Unanswered
	}
	s.current = 0
	s.submitted = false
	s.startedAt = time.Now()
	s.state = models.SessionActive

	if mode == models.ModeExam {
		s.timeRemaining = int(s.examDuration / time.Second)
		s.timerStop = make(chan struct{})
		s.timerStopped = false
		go s.runCountdown(s.timerStop)
	}

	snap := s.snapshotLocked()
	started := s.onStarted
	s.mu.Unlock()

	if started != nil {
		started(snap)
	}
	return nil
}

// SelectAnswer records (or overwrites) the answer for the current
// question. Re-answering is allowed in every mode; learning-mode lock
// rules belong to the presentation layer.
func (s *Session) SelectAnswer(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionActive {
		return ErrSessionNotActive
	}
	if optionIndex < 0 || optionIndex > 3 {
		return ErrAnswerIndexOutOfRange
	}

	s.answers[s.current] = optionIndex
	return nil
}

// Next advances to the following question, subject to the mode's
// forward-gating policy.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionActive {
		return ErrSessionNotActive
	}
	if s.current >= len(s.questions)-1 {
		return ErrNoNextQuestion
	}
	if policyFor(s.mode).forwardRequiresAnswer && s.answers[s.current] == models.Unanswered {
		return ErrAnswerRequired
	}

	s.current++
	return nil
}

// Previous moves back one question; never gated on an answer.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionActive {
		return ErrSessionNotActive
	}
	if !policyFor(s.mode).allowBackward {
		return ErrBackwardNotAllowed
	}
	if s.current == 0 {
		return ErrNoPreviousQuestion
	}

	s.current--
	return nil
}

// Submit transitions active -> results. A manual submit requires
// every question answered; only timer expiry submits unconditionally.
func (s *Session) Submit() error {
	s.mu.Lock()

	if s.submitted {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if s.state != models.SessionActive {
		s.mu.Unlock()
		return ErrSessionNotActive
	}
	for _, a := range s.answers {
		if a == models.Unanswered {
			s.mu.Unlock()
			return ErrUnansweredQuestions
		}
	}

	snap, score := s.completeLocked()
	done := s.onCompleted
	s.mu.Unlock()

	if done != nil {
		done(snap, score, false)
	}
	return nil
}

// Retake transitions results -> setup and discards the attempt.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionResults {
		return ErrSessionNotInResults
	}

	s.questions = nil
	s.answers = nil
	s.current = 0
	s.timeRemaining = 0
	s.submitted = false
	s.state = models.SessionSetup
	return nil
}

// Results recomputes the score summary from the frozen answers.
func (s *Session) Results() (*models.ScoreSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.SessionResults {
		return nil, ErrSessionNotInResults
	}
	return Score(s.questions, s.answers)
}

// Snapshot returns a read-only copy of the session.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() models.SessionSnapshot {
	questions := make([]models.Question, len(s.questions))
	copy(questions, s.questions)
	answers := make([]int, len(s.answers))
	copy(answers, s.answers)

	return models.SessionSnapshot{
		ID:            s.id,
		State:         s.state,
		Mode:          s.mode,
		Questions:     questions,
		Answers:       answers,
		CurrentIndex:  s.current,
		TimeRemaining: s.timeRemaining,
		StartedAt:     s.startedAt,
	}
}

// completeLocked freezes the answers and moves to results. Callers
// hold the lock and fire the completion callback after releasing it.
func (s *Session) completeLocked() (models.SessionSnapshot, *models.ScoreSummary) {
	s.submitted = true
	s.state = models.SessionResults
	s.stopCountdownLocked()

	score, err := Score(s.questions, s.answers)
	if err != nil {
		// Unreachable after a valid Start; scored as zero.
		score = &models.ScoreSummary{WrongCount: len(s.questions)}
	}
	return s.snapshotLocked(), score
}

func (s *Session) stopCountdownLocked() {
	if s.timerStop != nil && !s.timerStopped {
		close(s.timerStop)
		s.timerStopped = true
	}
}

func (s *Session) runCountdown(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.tick() {
				return
			}
		}
	}
}

// tick decrements the countdown by one second. On reaching zero it
// forces exactly one submit, whatever the answers hold; the submitted
// flag keeps queued ticks from firing again. Returns true when the
// countdown is finished.
func (s *Session) tick() bool {
	s.mu.Lock()

	if s.state != models.SessionActive || s.submitted {
		s.mu.Unlock()
		return true
	}

	if s.timeRemaining > 0 {
		s.timeRemaining--
	}
	if s.timeRemaining > 0 {
		s.mu.Unlock()
		return false
	}

	snap, score := s.completeLocked()
	done := s.onCompleted
	s.mu.Unlock()

	if done != nil {
		done(snap, score, true)
	}
	return true
}

// ===== SESSION MANAGER =====

// SessionManager owns the ephemeral session registry. Sessions live
// in memory only; a removed or replaced session is simply dropped.
type SessionManager interface {
	Create() *Session
	Get(id string) (*Session, error)
	Remove(id string)
}

type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	examDuration time.Duration
	logger       utils.Logger
	newID        func() string
	onStarted    func(models.SessionSnapshot)
	onCompleted  CompletionFunc
}

// NewSessionManager creates a session registry. The callbacks may be
// nil; the manager invokes them outside any session lock.
func NewSessionManager(examDuration time.Duration, logger utils.Logger, newID func() string, onStarted func(models.SessionSnapshot), onCompleted CompletionFunc) SessionManager {
	return &sessionManager{
		sessions:     make(map[string]*Session),
		examDuration: examDuration,
		logger:       logger,
		newID:        newID,
		onStarted:    onStarted,
		onCompleted:  onCompleted,
	}
}

func (m *sessionManager) Create() *Session {
	s := &Session{
		id:           m.newID(),
		state:        models.SessionSetup,
		examDuration: m.examDuration,
		onStarted:    m.onStarted,
		onCompleted:  m.onCompleted,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("Created quiz session", "session_id", s.id)
	return s
}

func (m *sessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

func (m *sessionManager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.mu.Lock()
		s.stopCountdownLocked()
		s.mu.Unlock()
		m.logger.Info("Removed quiz session", "session_id", id)
	}
}
