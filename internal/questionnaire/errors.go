package questionnaire

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelection means the active question has no checked option.
	ErrNoSelection = errors.New("no option selected")

	// ErrNoQuestions means the questionnaire was loaded empty.
	ErrNoQuestions = errors.New("no questions loaded")
)

// User-facing texts.
const (
	msgNoSelection    = "Please select an answer before continuing."
	msgUnanswered     = "Please answer every question before submitting."
	msgNetwork        = "Could not send your answers: network error."
	msgNoQuestions    = "No questions were loaded from the question bank."
	msgServerDefault  = "the server could not score your answers"
	msgUnexpectedFail = "Could not send your answers: %v"
)

// UnansweredError reports the first question, in sequence order, that has no
// committed answer at submit time.
type UnansweredError struct {
	Index      int
	QuestionID string
}

func (e *UnansweredError) Error() string {
	return fmt.Sprintf("question %s (position %d) is unanswered", e.QuestionID, e.Index+1)
}

// TransportError covers network failures and non-2xx responses. Status is 0
// when the request never completed.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("scoring request failed with status %d: %v", e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("scoring request failed with status %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("scoring request failed: %v", e.Err)
	default:
		return "scoring request failed"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a 2xx response whose body says success is false.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return msgServerDefault
	}
	return e.Message
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var unanswered *UnansweredError
	var transport *TransportError
	var app *ApplicationError

	switch {
	case errors.Is(err, ErrNoSelection):
		return msgNoSelection
	case errors.Is(err, ErrNoQuestions):
		return msgNoQuestions
	case errors.As(err, &unanswered):
		return msgUnanswered
	case errors.As(err, &transport):
		return msgNetwork
	case errors.As(err, &app):
		return "Error: " + app.Error()
	default:
		return fmt.Sprintf(msgUnexpectedFail, err)
	}
}
