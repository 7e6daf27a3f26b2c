package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitesys/registrar/internal/challenge"
	"github.com/bitesys/registrar/internal/events"
	"github.com/bitesys/registrar/internal/models"
	"github.com/bitesys/registrar/internal/validation"
)

// TokenSource hands out one attestation token per submission attempt.
type TokenSource interface {
	Ready() bool
	AcquireToken(ctx context.Context, action string) (string, error)
}

// Appender is the write-only slice of the registration store the controller
// needs: a single append per successful submission, nothing else.
type Appender interface {
	AppendRegistration(rec *models.RegistrationRecord) error
}

// Outcome is what the shell shows on the success view.
type Outcome struct {
	Name  string `json:"name"`
	Event string `json:"event"`
}

// Controller runs the submission flow: validate, acquire a challenge token,
// append the record, surface the result. Collaborators are injected so the
// flow is testable without network access.
type Controller struct {
	tokens TokenSource
	store  Appender
	action string
	now    func() time.Time
}

func NewController(tokens TokenSource, store Appender, action string) *Controller {
	return &Controller{
		tokens: tokens,
		store:  store,
		action: action,
		now:    time.Now,
	}
}

// Submit drives the form through the full flow. On any failure the form
// returns to IDLE with its contents intact so the user can correct and
// resubmit; a fresh token is acquired on every attempt. Exactly one store
// write happens per successful submission and none on failure.
func (c *Controller) Submit(ctx context.Context, f *Form) (*Outcome, error) {
	if f.inFlight {
		return nil, ErrSubmissionInFlight
	}
	f.inFlight = true
	defer func() { f.inFlight = false }()

	f.state = StateValidating
	if err := c.validate(f); err != nil {
		f.state = StateIdle
		return nil, err
	}

	f.state = StateAwaitingChallenge
	if _, err := c.tokens.AcquireToken(ctx, c.action); err != nil {
		f.state = StateIdle
		return nil, challengeError(err)
	}

	f.state = StateSubmitting
	rec := c.buildRecord(f)
	if err := c.store.AppendRegistration(rec); err != nil {
		f.state = StateIdle
		return nil, &SubmissionError{
			Kind:    KindStore,
			Code:    "STORE_UNAVAILABLE",
			Message: "Registration failed. Please try again later.",
			Err:     err,
		}
	}

	f.state = StateSuccess
	return &Outcome{
		Name:  f.Registrant.FirstName + " " + f.Registrant.LastName,
		Event: f.EventType,
	}, nil
}

// validate runs the checks in order and stops at the first failure.
func (c *Controller) validate(f *Form) error {
	if !c.tokens.Ready() {
		return &SubmissionError{
			Kind:    KindChallenge,
			Code:    "CHALLENGE_NOT_READY",
			Message: "Security service is still initializing. Please try again in a moment.",
		}
	}

	def, ok := events.Find(f.EventType)
	if !ok {
		return validationError(validation.Result{
			Code:    validation.CodeEmpty,
			Message: "Please select an event.",
		})
	}
	if def.External {
		return validationError(validation.Result{
			Code: "EXTERNAL_REGISTRATION",
			Message: fmt.Sprintf(
				"%s registrations are handled on an external form: %s",
				def.Name, def.ExternalLink,
			),
		})
	}

	if f.Registrant.FirstName == "" || f.Registrant.LastName == "" {
		return validationError(validation.Result{
			Code:    validation.CodeNameRequired,
			Message: "First and last name are required.",
		})
	}

	if def.IsTeamEvent() && f.TeamName == "" {
		return validationError(validation.Result{
			Code:    validation.CodeEmpty,
			Message: "Team Name is required for this event.",
		})
	}

	if res := validation.Email(f.Registrant.Email, f.EventType); !res.Valid {
		return validationError(res)
	}
	if res := validation.Phone(f.Registrant.Phone); !res.Valid {
		return validationError(res)
	}

	members := f.roster.Members()
	if res := validation.TeamRequirements(def.IsFixedTeam(), members); !res.Valid {
		return validationError(res)
	}
	for i, m := range members {
		if res := validation.TeamMember(m, i, f.EventType); !res.Valid {
			return validationError(res)
		}
	}

	return nil
}

func (c *Controller) buildRecord(f *Form) *models.RegistrationRecord {
	rec := &models.RegistrationRecord{
		FirstName: f.Registrant.FirstName,
		LastName:  f.Registrant.LastName,
		Email:     f.Registrant.Email,
		Phone:     f.Registrant.Phone,
		EventType: f.EventType,
		TeamName:  f.TeamName,
		Timestamp: c.now().UTC().Format(time.RFC3339),
	}

	for i, m := range f.roster.Members() {
		switch i {
		case 0:
			rec.Member2Name, rec.Member2Email, rec.Member2Phone = m.Name, m.Email, m.Phone
		case 1:
			rec.Member3Name, rec.Member3Email, rec.Member3Phone = m.Name, m.Email, m.Phone
		}
	}

	return rec
}

func validationError(res validation.Result) error {
	return &SubmissionError{
		Kind:    KindValidation,
		Code:    res.Code,
		Message: res.Message,
	}
}

func challengeError(err error) error {
	code := "CHALLENGE_REJECTED"
	message := "Could not verify your browser. Please try again."
	switch {
	case errors.Is(err, challenge.ErrNotReady):
		code = "CHALLENGE_NOT_READY"
		message = "Security service is still initializing. Please try again in a moment."
	case errors.Is(err, challenge.ErrEmptyToken):
		code = "CHALLENGE_EMPTY"
		message = "Security check did not complete. Please try again."
	}
	return &SubmissionError{
		Kind:    KindChallenge,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
