package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitesys/registrar/internal/models"
)

const (
	restrictedEvent = "TECHVENTURES"
	openEvent       = "PRODUCT PIONEERS"
)

func TestEmail(t *testing.T) {
	testCases := []struct {
		name         string
		email        string
		event        string
		valid        bool
		expectedCode string
	}{
		{
			name:         "blank email",
			email:        "",
			event:        restrictedEvent,
			expectedCode: CodeEmpty,
		},
		{
			name:         "missing at sign",
			email:        "someone.iimshillong.ac.in",
			event:        restrictedEvent,
			expectedCode: CodeSyntax,
		},
		{
			name:         "missing tld",
			email:        "someone@host",
			event:        restrictedEvent,
			expectedCode: CodeSyntax,
		},
		{
			name:         "whitespace in local part",
			email:        "some one@iimshillong.ac.in",
			event:        restrictedEvent,
			expectedCode: CodeSyntax,
		},
		{
			name:         "outside domain on restricted event",
			email:        "someone@gmail.com",
			event:        restrictedEvent,
			expectedCode: CodeDomainRestricted,
		},
		{
			name:  "outside domain on open event",
			email: "someone@gmail.com",
			event: openEvent,
			valid: true,
		},
		{
			name:  "institutional email on restricted event",
			email: "someone@iimshillong.ac.in",
			event: restrictedEvent,
			valid: true,
		},
		{
			name:  "domain suffix match ignores case",
			email: "someone@IIMShillong.AC.IN",
			event: restrictedEvent,
			valid: true,
		},
		{
			name:         "bad syntax on open event still fails",
			email:        "nonsense",
			event:        openEvent,
			expectedCode: CodeSyntax,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Email(tc.email, tc.event)
			assert.Equal(t, tc.valid, res.Valid)
			assert.Equal(t, tc.expectedCode, res.Code)
			if !tc.valid {
				assert.NotEmpty(t, res.Message)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	testCases := []struct {
		name         string
		phone        string
		valid        bool
		expectedCode string
	}{
		{name: "valid number", phone: "9876543210", valid: true},
		{name: "blank", phone: "", expectedCode: CodeEmpty},
		{name: "bad leading digit", phone: "1234567890", expectedCode: CodeFormat},
		{name: "too short", phone: "98765432", expectedCode: CodeFormat},
		{name: "too long", phone: "98765432101", expectedCode: CodeFormat},
		{name: "non-digits", phone: "98765abcde", expectedCode: CodeFormat},
		{name: "leading six", phone: "6000000000", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Phone(tc.phone)
			assert.Equal(t, tc.valid, res.Valid)
			assert.Equal(t, tc.expectedCode, res.Code)
		})
	}
}

func TestTeamRequirements(t *testing.T) {
	members := func(n int) []models.TeamMember {
		out := make([]models.TeamMember, n)
		for i := range out {
			out[i] = models.TeamMember{Name: "Member"}
		}
		return out
	}

	t.Run("fixed team requires exactly two members", func(t *testing.T) {
		assert.False(t, TeamRequirements(true, members(0)).Valid)
		assert.False(t, TeamRequirements(true, members(1)).Valid)
		assert.True(t, TeamRequirements(true, members(2)).Valid)

		res := TeamRequirements(true, members(1))
		assert.Equal(t, CodeTeamSize, res.Code)
	})

	t.Run("bounded team accepts any size", func(t *testing.T) {
		assert.True(t, TeamRequirements(false, members(0)).Valid)
		assert.True(t, TeamRequirements(false, members(1)).Valid)
		assert.True(t, TeamRequirements(false, members(2)).Valid)
	})
}

func TestTeamMember(t *testing.T) {
	testCases := []struct {
		name         string
		member       models.TeamMember
		index        int
		event        string
		valid        bool
		expectedCode string
	}{
		{
			name:         "blank name",
			member:       models.TeamMember{},
			index:        0,
			event:        restrictedEvent,
			expectedCode: CodeNameRequired,
		},
		{
			name:   "name only is enough",
			member: models.TeamMember{Name: "Trinity"},
			index:  0,
			event:  restrictedEvent,
			valid:  true,
		},
		{
			name:         "malformed optional email",
			member:       models.TeamMember{Name: "Trinity", Email: "not-an-email"},
			index:        0,
			event:        restrictedEvent,
			expectedCode: CodeSyntax,
		},
		{
			name:         "outside domain on restricted event",
			member:       models.TeamMember{Name: "Trinity", Email: "trinity@gmail.com"},
			index:        0,
			event:        restrictedEvent,
			expectedCode: CodeDomainRestricted,
		},
		{
			name:   "outside domain on open event",
			member: models.TeamMember{Name: "Trinity", Email: "trinity@gmail.com"},
			index:  0,
			event:  openEvent,
			valid:  true,
		},
		{
			name:         "malformed optional phone",
			member:       models.TeamMember{Name: "Trinity", Phone: "12345"},
			index:        1,
			event:        restrictedEvent,
			expectedCode: CodeFormat,
		},
		{
			name: "fully filled member",
			member: models.TeamMember{
				Name:  "Trinity",
				Email: "trinity@iimshillong.ac.in",
				Phone: "9123456789",
			},
			index: 1,
			event: restrictedEvent,
			valid: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := TeamMember(tc.member, tc.index, tc.event)
			assert.Equal(t, tc.valid, res.Valid)
			assert.Equal(t, tc.expectedCode, res.Code)
		})
	}
}

func TestTeamMemberMessagesUsePositionalNumber(t *testing.T) {
	// Slot 0 is member 2, slot 1 is member 3.
	res := TeamMember(models.TeamMember{}, 0, restrictedEvent)
	assert.Contains(t, res.Message, "Member 2")

	res = TeamMember(models.TeamMember{}, 1, restrictedEvent)
	assert.Contains(t, res.Message, "Member 3")
}
