package events

// TeamMode describes how many participants an event expects beyond the
// registrant. FixedThree means registrant + exactly 2 members, BoundedThree
// means registrant + up to 2 members.
type TeamMode string

const (
	TeamNone         TeamMode = "none"
	TeamFixedThree   TeamMode = "fixed-3"
	TeamBoundedThree TeamMode = "bounded-upto-3"
)

// MaxExtraMembers is the number of team member slots beyond the registrant.
const MaxExtraMembers = 2

type Definition struct {
	Name         string   `json:"name"`
	TeamMode     TeamMode `json:"team_mode"`
	Open         bool     `json:"open"`
	External     bool     `json:"external"`
	ExternalLink string   `json:"external_link,omitempty"`
}

func (d Definition) IsTeamEvent() bool {
	return d.TeamMode != TeamNone
}

func (d Definition) IsFixedTeam() bool {
	return d.TeamMode == TeamFixedThree
}

// catalog is the fest lineup. Events flagged External take registrations on an
// outside form and never reach the local submission pipeline.
var catalog = []Definition{
	{Name: "BOARDROOM BATTLEGROUND", TeamMode: TeamFixedThree, Open: true},
	{Name: "bITeWARS", TeamMode: TeamBoundedThree},
	{Name: "PRODUCT PIONEERS", TeamMode: TeamNone, Open: true},
	{Name: "TECHVENTURES", TeamMode: TeamNone},
	{Name: "PRECISE PROMPT", TeamMode: TeamNone},
	{Name: "FIGMAFORGE", TeamMode: TeamNone},
	{Name: "TECH BRIDGE", TeamMode: TeamNone, External: true, ExternalLink: "https://forms.gle/techbridge"},
	{Name: "VIRTUOSPHERE", TeamMode: TeamNone, External: true, ExternalLink: "https://forms.gle/virtuosphere"},
	{Name: "bITeCAST", TeamMode: TeamNone, External: true, ExternalLink: "https://forms.gle/bitecast"},
}

// Find returns the definition for an event name, or false if the name is not
// in the catalog.
func Find(name string) (Definition, bool) {
	for _, d := range catalog {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// All returns the full catalog in lineup order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Registerable returns the events the local pipeline accepts submissions for.
func Registerable() []Definition {
	var out []Definition
	for _, d := range catalog {
		if !d.External {
			out = append(out, d)
		}
	}
	return out
}

// IsOpen reports whether an event is exempt from the institutional email
// domain restriction. Unknown events are treated as restricted.
func IsOpen(name string) bool {
	d, ok := Find(name)
	return ok && d.Open
}
