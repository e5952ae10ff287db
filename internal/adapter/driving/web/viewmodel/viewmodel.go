// Package viewmodel defines presentation-ready structs for the display layer.
// View models decouple rendering from application result types.
package viewmodel

// Element ids of the page targets the dashboard writes into.
const (
	CountElementID     = "kb-count"
	VersionElementID   = "kb-version"
	ChangelogElementID = "latest-changelog"
)

// Fragment is the content of one display target: either escaped text or
// already-sanitized HTML. The zero Fragment leaves the target untouched.
type Fragment struct {
	Text string
	HTML string
}

// IsHTML reports whether the fragment carries markup.
func (f Fragment) IsHTML() bool {
	return f.HTML != ""
}

// IsZero reports whether the fragment has nothing to display.
func (f Fragment) IsZero() bool {
	return f.Text == "" && f.HTML == ""
}

// DashboardViewModel holds all data needed to render the dashboard widgets.
type DashboardViewModel struct {
	Count     Fragment
	Version   Fragment
	Changelog Fragment
}

// Targets maps each element id to the fragment destined for it.
func (v DashboardViewModel) Targets() map[string]Fragment {
	return map[string]Fragment{
		CountElementID:     v.Count,
		VersionElementID:   v.Version,
		ChangelogElementID: v.Changelog,
	}
}
