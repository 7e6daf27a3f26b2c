package models

// Registrant is the primary submitter, member 1 of any team. The validate
// tags cover request shape only; the domain rules live in the validation
// package.
type Registrant struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"required,len=10"`
}

// TeamMember is one extra slot on a team roster. Identity is positional:
// slots are member 2 and 3, the registrant is implicitly member 1.
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RegistrationRecord is the flattened, timestamped shape persisted per
// successful submission. Members are spread into indexed columns rather than
// nested, matching the storage format the fest's dashboards read.
type RegistrationRecord struct {
	FirstName    string `db:"first_name" json:"firstName"`
	LastName     string `db:"last_name" json:"lastName"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
	EventType    string `db:"event_type" json:"eventType"`
	TeamName     string `db:"team_name" json:"teamName,omitempty"`
	Member2Name  string `db:"member2_name" json:"member2Name,omitempty"`
	Member2Email string `db:"member2_email" json:"member2Email,omitempty"`
	Member2Phone string `db:"member2_phone" json:"member2Phone,omitempty"`
	Member3Name  string `db:"member3_name" json:"member3Name,omitempty"`
	Member3Email string `db:"member3_email" json:"member3Email,omitempty"`
	Member3Phone string `db:"member3_phone" json:"member3Phone,omitempty"`
	Timestamp    string `db:"timestamp" json:"timestamp"`
}
