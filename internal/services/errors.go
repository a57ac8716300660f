package services

import "errors"

// ===== COMMON SERVICE ERRORS =====

var (
	// File / pipeline errors
	ErrSourceUnreadable = errors.New("quiz file could not be read or decoded")
	ErrNoUsableData     = errors.New("no valid questions in quiz file")
	ErrNoFilesForRole   = errors.New("no quiz files available for role")
	ErrNoValidQuestions = errors.New("could not build an exam: no valid questions")

	// Caller-bug precondition violations
	ErrInvalidInput = errors.New("invalid input")

	// Session state machine errors
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionNotActive      = errors.New("session is not active")
	ErrSessionNotInSetup     = errors.New("session already started")
	ErrSessionNotInResults   = errors.New("session has no results yet")
	ErrAnswerRequired        = errors.New("current question must be answered before advancing")
	ErrNoNextQuestion        = errors.New("already at the last question")
	ErrNoPreviousQuestion    = errors.New("already at the first question")
	ErrBackwardNotAllowed    = errors.New("backward navigation not allowed in this mode")
	ErrUnansweredQuestions   = errors.New("all questions must be answered before submitting")
	ErrAlreadySubmitted      = errors.New("session already submitted")
	ErrAnswerIndexOutOfRange = errors.New("answer index must be between 0 and 3")
)

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "nothing there" condition
// that the caller should render as an empty / not-found state.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrNoFilesForRole)
}

// IsFileError checks if error is a file-level ingestion failure,
// non-fatal to the rest of the application.
func IsFileError(err error) bool {
	return errors.Is(err, ErrSourceUnreadable) ||
		errors.Is(err, ErrNoUsableData) ||
		errors.Is(err, ErrNoValidQuestions)
}

// IsTransitionError checks if error is an invalid session transition,
// a client-correctable condition rather than a server fault.
func IsTransitionError(err error) bool {
	return errors.Is(err, ErrSessionNotActive) ||
		errors.Is(err, ErrSessionNotInSetup) ||
		errors.Is(err, ErrSessionNotInResults) ||
		errors.Is(err, ErrAnswerRequired) ||
		errors.Is(err, ErrNoNextQuestion) ||
		errors.Is(err, ErrNoPreviousQuestion) ||
		errors.Is(err, ErrBackwardNotAllowed) ||
		errors.Is(err, ErrUnansweredQuestions) ||
		errors.Is(err, ErrAlreadySubmitted) ||
		errors.Is(err, ErrAnswerIndexOutOfRange)
}
