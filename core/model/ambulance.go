package model

// AmbulanceStatus reports whether an ambulance can take a dispatch.
type AmbulanceStatus string

const (
	StatusIdle AmbulanceStatus = "idle"
	StatusBusy AmbulanceStatus = "busy"
)

// Ambulance is a dispatchable unit positioned in a zone. Entities are
// regenerated every event, so Status is idle at decision time unless a caller
// mutated it between reset and step; the environment still guards on it.
type Ambulance struct {
	ID     int
	Zone   int
	Status AmbulanceStatus
}
