package model

// Severity grades a patient event.
type Severity int

const (
	SeverityModerate Severity = iota
	SeveritySevere
	SeverityCritical
)

// String returns a human readable severity label.
func (s Severity) String() string {
	switch s {
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Patient is the single emergency of one event. RequiredSpecialty is SpecNone
// when any hospital can treat the patient.
type Patient struct {
	Zone              int
	Severity          Severity
	RequiredSpecialty Specialty
}
