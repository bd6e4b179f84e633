package domain

// Fleet status of an aircraft. Only operational aircraft are assignable.
type AircraftStatus string

const (
	StatusOperational AircraftStatus = "operational"
	StatusMaintenance AircraftStatus = "maintenance"
	StatusGrounded    AircraftStatus = "grounded"
	StatusInspection  AircraftStatus = "inspection"
)

// Valid reports whether s is one of the known fleet statuses.
func (s AircraftStatus) Valid() bool {
	switch s {
	case StatusOperational, StatusMaintenance, StatusGrounded, StatusInspection:
		return true
	}
	return false
}

type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in-progress"
	IssueResolved   IssueStatus = "resolved"
)

// A defect reported against an aircraft.
type Issue struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Description  string      `json:"description"`
	ReportedDate string      `json:"reported_date"`
	Status       IssueStatus `json:"status"`
	Priority     string      `json:"priority"`
}

// Operational metadata for one aircraft, keyed by registration.
// Owned outside the engine; the engine only reads it.
type AircraftProfile struct {
	Registration        string         `json:"registration"`
	Model               string         `json:"model"`
	Status              AircraftStatus `json:"status"`
	Efficiency          float64        `json:"efficiency"`
	NextMaintenanceDate string         `json:"next_maintenance_date"`
	Issues              []Issue        `json:"issues"`
}

// OpenIssues counts issues that have not been resolved.
func (p AircraftProfile) OpenIssues() int {
	n := 0
	for _, is := range p.Issues {
		if is.Status != IssueResolved {
			n++
		}
	}
	return n
}

// Reference table of profiles by registration.
type ProfileLookup map[string]AircraftProfile

// NewProfileLookup indexes profiles by registration. Later entries win.
func NewProfileLookup(profiles []AircraftProfile) ProfileLookup {
	out := make(ProfileLookup, len(profiles))
	for _, p := range profiles {
		out[p.Registration] = p
	}
	return out
}
