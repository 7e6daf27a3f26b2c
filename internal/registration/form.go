package registration

import (
	"github.com/bitesys/registrar/internal/models"
)

// State tracks where a form is in the submission flow.
type State string

const (
	StateIdle              State = "IDLE"
	StateValidating        State = "VALIDATING"
	StateAwaitingChallenge State = "AWAITING_CHALLENGE"
	StateSubmitting        State = "SUBMITTING"
	StateSuccess           State = "SUCCESS"
)

// Form is the mutable state of one registration session. Each session owns
// its form exclusively, nothing here is shared across sessions.
type Form struct {
	Registrant models.Registrant
	EventType  string
	TeamName   string

	roster   Roster
	state    State
	inFlight bool
}

func NewForm() *Form {
	return &Form{state: StateIdle}
}

// SelectEvent switches the form to a different event. Team composition does
// not carry across events, so switching resets the roster.
func (f *Form) SelectEvent(name string) {
	if f.EventType != name {
		f.roster.Reset()
	}
	f.EventType = name
}

func (f *Form) Roster() *Roster {
	return &f.roster
}

func (f *Form) State() State {
	return f.state
}

// Reset returns the form to the empty initial shape. Called by the shell when
// the success view is dismissed.
func (f *Form) Reset() {
	*f = Form{state: StateIdle}
}
