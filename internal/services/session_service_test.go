package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(onStarted func(models.SessionSnapshot), onCompleted CompletionFunc) SessionManager {
	return NewSessionManager(2*time.Hour, newTestLogger(), uuid.NewString, onStarted, onCompleted)
}

func startedSession(t *testing.T, mode models.QuizMode, n int) *Session {
	t.Helper()

	s := newTestManager(nil, nil).Create()
	require.NoError(t, s.Start(questionSet(n), mode))
	return s
}

func answerAll(t *testing.T, s *Session) {
	t.Helper()

	n := len(s.Snapshot().Questions)
	for i := 0; i < n; i++ {
		require.NoError(t, s.SelectAnswer(0))
		if i < n-1 {
			require.NoError(t, s.Next())
		}
	}
}

func TestSession_Start(t *testing.T) {
	t.Run("transitions setup to active", func(t *testing.T) {
		s := newTestManager(nil, nil).Create()

		require.NoError(t, s.Start(questionSet(3), models.ModeTesting))

		snap := s.Snapshot()
		assert.Equal(t, models.SessionActive, snap.State)
		assert.Equal(t, models.ModeTesting, snap.Mode)
		assert.Equal(t, 0, snap.CurrentIndex)
		assert.Equal(t, []int{models.Unanswered, models.Unanswered, models.Unanswered}, snap.Answers)
	})

	t.Run("rejects empty question set", func(t *testing.T) {
		s := newTestManager(nil, nil).Create()
		assert.ErrorIs(t, s.Start(nil, models.ModeLearning), ErrInvalidInput)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		s := newTestManager(nil, nil).Create()
		assert.ErrorIs(t, s.Start(questionSet(1), "speedrun"), ErrInvalidInput)
	})

	t.Run("rejects double start", func(t *testing.T) {
		s := startedSession(t, models.ModeLearning, 2)
		assert.ErrorIs(t, s.Start(questionSet(2), models.ModeLearning), ErrSessionNotInSetup)
	})

	t.Run("exam start arms the countdown", func(t *testing.T) {
		s := startedSession(t, models.ModeExam, 2)
		assert.Equal(t, 7200, s.Snapshot().TimeRemaining)
	})

	t.Run("non-exam start has no countdown", func(t *testing.T) {
		s := startedSession(t, models.ModeTesting, 2)
		assert.Equal(t, 0, s.Snapshot().TimeRemaining)
	})

	t.Run("fires the started callback", func(t *testing.T) {
		var got models.SessionSnapshot
		s := newTestManager(func(snap models.SessionSnapshot) { got = snap }, nil).Create()

		require.NoError(t, s.Start(questionSet(2), models.ModeLearning))

		assert.Equal(t, s.ID(), got.ID)
		assert.Equal(t, models.SessionActive, got.State)
	})
}

func TestSession_SelectAnswer(t *testing.T) {
	s := startedSession(t, models.ModeTesting, 2)

	require.NoError(t, s.SelectAnswer(2))
	assert.Equal(t, 2, s.Snapshot().Answers[0])

	// Re-answering overwrites.
	require.NoError(t, s.SelectAnswer(3))
	assert.Equal(t, 3, s.Snapshot().Answers[0])

	assert.ErrorIs(t, s.SelectAnswer(4), ErrAnswerIndexOutOfRange)
	assert.ErrorIs(t, s.SelectAnswer(-1), ErrAnswerIndexOutOfRange)
}

func TestSession_NavigationMatrix(t *testing.T) {
	t.Run("learning allows forward without answer", func(t *testing.T) {
		s := startedSession(t, models.ModeLearning, 3)

		require.NoError(t, s.Next())
		assert.Equal(t, 1, s.Snapshot().CurrentIndex)
	})

	t.Run("learning forbids backward", func(t *testing.T) {
		s := startedSession(t, models.ModeLearning, 3)
		require.NoError(t, s.Next())

		assert.ErrorIs(t, s.Previous(), ErrBackwardNotAllowed)
	})

	t.Run("testing gates forward on an answer", func(t *testing.T) {
		s := startedSession(t, models.ModeTesting, 3)

		assert.ErrorIs(t, s.Next(), ErrAnswerRequired)

		require.NoError(t, s.SelectAnswer(1))
		require.NoError(t, s.Next())
		assert.Equal(t, 1, s.Snapshot().CurrentIndex)
	})

	t.Run("testing allows backward without answer", func(t *testing.T) {
		s := startedSession(t, models.ModeTesting, 3)
		require.NoError(t, s.SelectAnswer(1))
		require.NoError(t, s.Next())

		require.NoError(t, s.Previous())
		assert.Equal(t, 0, s.Snapshot().CurrentIndex)
	})

	t.Run("exam gates forward and allows backward", func(t *testing.T) {
		s := startedSession(t, models.ModeExam, 3)

		assert.ErrorIs(t, s.Next(), ErrAnswerRequired)
		require.NoError(t, s.SelectAnswer(0))
		require.NoError(t, s.Next())
		require.NoError(t, s.Previous())
		assert.Equal(t, 0, s.Snapshot().CurrentIndex)
	})

	t.Run("cursor stays in bounds", func(t *testing.T) {
		s := startedSession(t, models.ModeTesting, 2)

		assert.ErrorIs(t, s.Previous(), ErrNoPreviousQuestion)

		require.NoError(t, s.SelectAnswer(0))
		require.NoError(t, s.Next())
		assert.ErrorIs(t, s.Next(), ErrNoNextQuestion)
	})
}

func TestSession_Submit(t *testing.T) {
	t.Run("requires every question answered", func(t *testing.T) {
		s := startedSession(t, models.ModeTesting, 2)
		require.NoError(t, s.SelectAnswer(0))

		assert.ErrorIs(t, s.Submit(), ErrUnansweredQuestions)
		assert.Equal(t, models.SessionActive, s.Snapshot().State)
	})

	t.Run("moves to results and fires the callback once", func(t *testing.T) {
		var calls atomic.Int32
		var auto atomic.Bool
		m := newTestManager(nil, func(snap models.SessionSnapshot, score *models.ScoreSummary, autoSubmitted bool) {
			calls.Add(1)
			auto.Store(autoSubmitted)
		})
		s := m.Create()
		require.NoError(t, s.Start(questionSet(2), models.ModeTesting))
		answerAll(t, s)

		require.NoError(t, s.Submit())

		assert.Equal(t, models.SessionResults, s.Snapshot().State)
		assert.Equal(t, int32(1), calls.Load())
		assert.False(t, auto.Load())

		assert.ErrorIs(t, s.Submit(), ErrAlreadySubmitted)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("rejects submit before start", func(t *testing.T) {
		s := newTestManager(nil, nil).Create()
		assert.ErrorIs(t, s.Submit(), ErrSessionNotActive)
	})
}

func TestSession_Results(t *testing.T) {
	s := startedSession(t, models.ModeTesting, 2)

	_, err := s.Results()
	assert.ErrorIs(t, err, ErrSessionNotInResults)

	// Answer first correctly (index 0), second wrongly.
	require.NoError(t, s.SelectAnswer(0))
	require.NoError(t, s.Next())
	require.NoError(t, s.SelectAnswer(0))
	require.NoError(t, s.Submit())

	score, err := s.Results()
	require.NoError(t, err)
	assert.Equal(t, 1, score.CorrectCount)
	assert.Equal(t, 1, score.WrongCount)
	assert.Equal(t, 50, score.Percentage)
}

func TestSession_Retake(t *testing.T) {
	s := startedSession(t, models.ModeTesting, 2)

	assert.ErrorIs(t, s.Retake(), ErrSessionNotInResults)

	answerAll(t, s)
	require.NoError(t, s.Submit())
	require.NoError(t, s.Retake())

	snap := s.Snapshot()
	assert.Equal(t, models.SessionSetup, snap.State)
	assert.Empty(t, snap.Questions)
	assert.Empty(t, snap.Answers)
	assert.Equal(t, 0, snap.CurrentIndex)

	// A retaken session can start a fresh attempt.
	require.NoError(t, s.Start(questionSet(3), models.ModeLearning))
	assert.Equal(t, models.SessionActive, s.Snapshot().State)
}

func TestSession_CountdownAutoSubmit(t *testing.T) {
	var calls atomic.Int32
	var auto atomic.Bool
	m := NewSessionManager(3*time.Second, newTestLogger(), uuid.NewString,
		nil,
		func(snap models.SessionSnapshot, score *models.ScoreSummary, autoSubmitted bool) {
			calls.Add(1)
			auto.Store(autoSubmitted)
		})
	s := m.Create()
	require.NoError(t, s.Start(questionSet(2), models.ModeExam))
	require.NoError(t, s.SelectAnswer(0))

	assert.False(t, s.tick())
	assert.False(t, s.tick())
	assert.Equal(t, 1, s.Snapshot().TimeRemaining)

	// Expiry submits even with unanswered questions.
	assert.True(t, s.tick())

	snap := s.Snapshot()
	assert.Equal(t, models.SessionResults, snap.State)
	assert.Equal(t, 0, snap.TimeRemaining)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, auto.Load())

	// Queued ticks after expiry must not submit again.
	assert.True(t, s.tick())
	assert.True(t, s.tick())
	assert.Equal(t, int32(1), calls.Load())

	assert.ErrorIs(t, s.Submit(), ErrAlreadySubmitted)
}

func TestSession_ManualSubmitStopsCountdown(t *testing.T) {
	var calls atomic.Int32
	m := NewSessionManager(10*time.Second, newTestLogger(), uuid.NewString,
		nil,
		func(models.SessionSnapshot, *models.ScoreSummary, bool) { calls.Add(1) })
	s := m.Create()
	require.NoError(t, s.Start(questionSet(1), models.ModeExam))
	require.NoError(t, s.SelectAnswer(0))

	require.NoError(t, s.Submit())

	// A tick racing the submit sees the finished session and does nothing.
	assert.True(t, s.tick())
	assert.Equal(t, int32(1), calls.Load())
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := startedSession(t, models.ModeTesting, 2)

	snap := s.Snapshot()
	snap.Answers[0] = 3
	snap.Questions[0].Question = "mutated"

	fresh := s.Snapshot()
	assert.Equal(t, models.Unanswered, fresh.Answers[0])
	assert.Equal(t, "Question", fresh.Questions[0].Question)
}

func TestSessionManager_Registry(t *testing.T) {
	m := newTestManager(nil, nil)

	s := m.Create()
	assert.NotEmpty(t, s.ID())

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	m.Remove(s.ID())
	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Removing twice is a no-op.
	m.Remove(s.ID())
}
