package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bitesys/registrar/internal/events"
	"github.com/bitesys/registrar/internal/models"
)

// AllowedDomain is the institutional email suffix required for restricted
// events. Matching is case-insensitive.
const AllowedDomain = "iimshillong.ac.in"

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// Failure codes surfaced alongside the human-readable message.
const (
	CodeEmpty            = "EMPTY"
	CodeSyntax           = "SYNTAX"
	CodeDomainRestricted = "DOMAIN_RESTRICTED"
	CodeFormat           = "FORMAT"
	CodeTeamSize         = "TEAM_SIZE"
	CodeNameRequired     = "NAME_REQUIRED"
)

// Result is the outcome of a single check. Valid results carry no code or
// message.
type Result struct {
	Valid   bool
	Code    string
	Message string
}

func ok() Result {
	return Result{Valid: true}
}

func fail(code, message string) Result {
	return Result{Code: code, Message: message}
}

func hasAllowedDomain(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+AllowedDomain)
}

// Email checks address syntax and, for events outside the open set, the
// institutional domain restriction.
func Email(email, eventName string) Result {
	if email == "" {
		return fail(CodeEmpty, "Email is required.")
	}
	if !emailRegex.MatchString(email) {
		return fail(CodeSyntax, "Please enter a valid email address.")
	}
	if !events.IsOpen(eventName) && !hasAllowedDomain(email) {
		return fail(CodeDomainRestricted, fmt.Sprintf(
			"Registration restricted to IIM Shillong email addresses (@%s) for this event.",
			AllowedDomain,
		))
	}
	return ok()
}

// Phone checks for exactly 10 digits with a leading 6-9.
func Phone(phone string) Result {
	if phone == "" {
		return fail(CodeEmpty, "Mobile number is required.")
	}
	if !phoneRegex.MatchString(phone) {
		return fail(CodeFormat, "Please enter a valid 10-digit mobile number")
	}
	return ok()
}

// TeamRequirements enforces the exact team size for fixed-team events.
// Bounded events impose no lower bound.
func TeamRequirements(isFixedTeamEvent bool, members []models.TeamMember) Result {
	if isFixedTeamEvent && len(members) != events.MaxExtraMembers {
		return fail(CodeTeamSize,
			"This event requires exactly a team of 3 members (You + 2 others). Please add 2 team members.",
		)
	}
	return ok()
}

// TeamMember checks one member slot. Name is mandatory once the slot exists;
// email and phone are optional but must be well-formed when present. index is
// the slot's position in the roster, zero-based: the registrant is member 1,
// so the displayed member number is index+2.
func TeamMember(member models.TeamMember, index int, eventName string) Result {
	memberNum := index + 2

	if member.Name == "" {
		return fail(CodeNameRequired, fmt.Sprintf("Please enter a name for Member %d.", memberNum))
	}

	if member.Email != "" {
		if !emailRegex.MatchString(member.Email) {
			return fail(CodeSyntax, fmt.Sprintf("Please enter a valid email for Member %d.", memberNum))
		}
		if !events.IsOpen(eventName) && !hasAllowedDomain(member.Email) {
			return fail(CodeDomainRestricted, fmt.Sprintf(
				"Member %d must have an IIM Shillong email address (@%s).",
				memberNum,
				AllowedDomain,
			))
		}
	}

	if member.Phone != "" && !phoneRegex.MatchString(member.Phone) {
		return fail(CodeFormat, fmt.Sprintf(
			"Please enter a valid 10-digit mobile number for Member %d.",
			memberNum,
		))
	}

	return ok()
}
