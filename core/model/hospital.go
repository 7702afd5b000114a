package model

import "fmt"

// Hospital is a care facility located in a zone. Bed and ICU counts are
// mutated only by the environment when a dispatch succeeds.
type Hospital struct {
	ID            int
	Zone          int
	TotalBeds     int
	AvailableBeds int
	ICUTotal      int
	ICUAvailable  int
	Specialties   map[Specialty]bool
}

// HasSpecialty reports whether the hospital provides the given specialty.
// Missing tags count as not provided.
func (h Hospital) HasSpecialty(s Specialty) bool {
	return h.Specialties[s]
}

// Validate checks that bed and ICU counts are consistent.
func (h Hospital) Validate() error {
	if h.AvailableBeds < 0 || h.AvailableBeds > h.TotalBeds {
		return fmt.Errorf("hospital %d: available beds %d outside [0,%d]", h.ID, h.AvailableBeds, h.TotalBeds)
	}
	if h.ICUAvailable < 0 || h.ICUAvailable > h.ICUTotal {
		return fmt.Errorf("hospital %d: available ICU %d outside [0,%d]", h.ID, h.ICUAvailable, h.ICUTotal)
	}
	return nil
}

// Clone returns a copy with its own specialty map.
func (h Hospital) Clone() Hospital {
	specs := make(map[Specialty]bool, len(h.Specialties))
	for k, v := range h.Specialties {
		specs[k] = v
	}
	h.Specialties = specs
	return h
}
