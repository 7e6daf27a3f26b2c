package registration

import (
	"github.com/bitesys/registrar/internal/events"
	"github.com/bitesys/registrar/internal/models"
)

// Field names a mutable slot on a team member.
type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldPhone Field = "phone"
)

// Roster holds the extra team members of one form, ordered and positional:
// slot 0 is member 2, slot 1 is member 3. Removing a slot shifts later
// members down, there are no stable member ids.
type Roster struct {
	members []models.TeamMember
}

// Add appends an empty member slot. Once the roster is at capacity the call
// is a silent no-op, not an error. Returns whether a slot was added.
func (r *Roster) Add() bool {
	if len(r.members) >= events.MaxExtraMembers {
		return false
	}
	r.members = append(r.members, models.TeamMember{})
	return true
}

// Remove deletes the slot at i and shifts the rest down. Out-of-range
// indices are ignored.
func (r *Roster) Remove(i int) bool {
	if i < 0 || i >= len(r.members) {
		return false
	}
	r.members = append(r.members[:i], r.members[i+1:]...)
	return true
}

// Set mutates one field of the slot at i.
func (r *Roster) Set(i int, field Field, value string) bool {
	if i < 0 || i >= len(r.members) {
		return false
	}
	switch field {
	case FieldName:
		r.members[i].Name = value
	case FieldEmail:
		r.members[i].Email = value
	case FieldPhone:
		r.members[i].Phone = value
	default:
		return false
	}
	return true
}

func (r *Roster) Len() int {
	return len(r.members)
}

// Members returns a copy of the current slots.
func (r *Roster) Members() []models.TeamMember {
	out := make([]models.TeamMember, len(r.members))
	copy(out, r.members)
	return out
}

func (r *Roster) Reset() {
	r.members = nil
}
