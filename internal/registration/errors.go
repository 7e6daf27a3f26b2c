package registration

import "errors"

// Kind buckets a submission failure: validation problems the user can fix,
// bot-challenge failures, and remote store failures. All three leave the form
// populated and editable.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindChallenge  Kind = "CHALLENGE_ERROR"
	KindStore      Kind = "STORE_ERROR"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission on the same form has not settled yet.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// SubmissionError carries the failure taxonomy kind, a machine code, and the
// message shown to the user.
type SubmissionError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
