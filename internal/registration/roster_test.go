package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRosterAddIsCapped(t *testing.T) {
	var r Roster

	assert.True(t, r.Add())
	assert.True(t, r.Add())
	// Third add is a silent no-op, not an error.
	assert.False(t, r.Add())
	assert.Equal(t, 2, r.Len())
}

func TestRosterRemoveShiftsDown(t *testing.T) {
	var r Roster
	r.Add()
	r.Add()
	r.Set(0, FieldName, "Trinity")
	r.Set(1, FieldName, "Morpheus")

	assert.True(t, r.Remove(0))

	members := r.Members()
	assert.Len(t, members, 1)
	assert.Equal(t, "Morpheus", members[0].Name)

	assert.False(t, r.Remove(5))
	assert.False(t, r.Remove(-1))
}

func TestRosterSet(t *testing.T) {
	var r Roster
	r.Add()

	assert.True(t, r.Set(0, FieldName, "Trinity"))
	assert.True(t, r.Set(0, FieldEmail, "trinity@iimshillong.ac.in"))
	assert.True(t, r.Set(0, FieldPhone, "9123456789"))

	m := r.Members()[0]
	assert.Equal(t, "Trinity", m.Name)
	assert.Equal(t, "trinity@iimshillong.ac.in", m.Email)
	assert.Equal(t, "9123456789", m.Phone)

	assert.False(t, r.Set(1, FieldName, "nobody"))
	assert.False(t, r.Set(0, Field("nickname"), "Trin"))
}

func TestRosterMembersReturnsCopy(t *testing.T) {
	var r Roster
	r.Add()
	r.Set(0, FieldName, "Trinity")

	members := r.Members()
	members[0].Name = "changed"

	assert.Equal(t, "Trinity", r.Members()[0].Name)
}

func TestFormSelectEventResetsRoster(t *testing.T) {
	f := NewForm()
	f.SelectEvent("bITeWARS")
	f.Roster().Add()
	f.Roster().Set(0, FieldName, "Trinity")

	// Switching events drops team composition.
	f.SelectEvent("BOARDROOM BATTLEGROUND")
	assert.Equal(t, 0, f.Roster().Len())

	// Re-selecting the current event keeps it.
	f.Roster().Add()
	f.SelectEvent("BOARDROOM BATTLEGROUND")
	assert.Equal(t, 1, f.Roster().Len())
}
