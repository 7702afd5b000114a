package worldgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ruraldispatch/core/model"
)

func newTestGen(seed int64) *Rural {
	return New(Config{}, rand.New(rand.NewSource(seed)))
}

func TestZonesGrid(t *testing.T) {
	g := newTestGen(1)
	zones := g.Zones(3, 2)
	require.Len(t, zones, 6)
	for i, z := range zones {
		require.Equal(t, i, z.ID)
		require.Equal(t, i/2, z.Row)
		require.Equal(t, i%2, z.Col)
	}
}

func TestHospitalsInvariants(t *testing.T) {
	g := newTestGen(2)
	zones := g.Zones(4, 4)
	hospitals := g.Hospitals(50, zones)
	require.Len(t, hospitals, 50)
	for _, h := range hospitals {
		require.NoError(t, h.Validate())
		if h.TotalBeds < 10 || h.TotalBeds > 60 {
			t.Fatalf("hospital %d: total beds %d outside [10,60]", h.ID, h.TotalBeds)
		}
		if h.AvailableBeds > 10 {
			t.Fatalf("hospital %d: available beds %d above cap", h.ID, h.AvailableBeds)
		}
		if h.ICUTotal > 8 {
			t.Fatalf("hospital %d: ICU total %d above cap", h.ID, h.ICUTotal)
		}
		if h.Zone < 0 || h.Zone >= len(zones) {
			t.Fatalf("hospital %d: zone %d out of range", h.ID, h.Zone)
		}
		if !h.HasSpecialty(model.SpecGeneral) {
			t.Fatalf("hospital %d: general care must always be provided", h.ID)
		}
	}
}

func TestAmbulancesIdle(t *testing.T) {
	g := newTestGen(3)
	zones := g.Zones(4, 4)
	for _, a := range g.Ambulances(10, zones) {
		require.Equal(t, model.StatusIdle, a.Status)
		if a.Zone < 0 || a.Zone >= len(zones) {
			t.Fatalf("ambulance %d: zone %d out of range", a.ID, a.Zone)
		}
	}
}

func TestPatientDraws(t *testing.T) {
	g := newTestGen(4)
	zones := g.Zones(4, 4)
	known := map[model.Specialty]bool{
		model.SpecNone:       true,
		model.SpecTrauma:     true,
		model.SpecCardiac:    true,
		model.SpecMaternity:  true,
		model.SpecPediatrics: true,
	}
	seenNone := false
	for i := 0; i < 200; i++ {
		p := g.Patient(zones)
		if p.Severity < model.SeverityModerate || p.Severity > model.SeverityCritical {
			t.Fatalf("severity %d out of range", p.Severity)
		}
		if !known[p.RequiredSpecialty] {
			t.Fatalf("unexpected specialty %q", p.RequiredSpecialty)
		}
		if p.RequiredSpecialty == model.SpecNone {
			seenNone = true
		}
	}
	require.True(t, seenNone, "patients without specialty requirement should be common")
}

func TestDeterministicWithSeed(t *testing.T) {
	a, b := newTestGen(99), newTestGen(99)
	zones := a.Zones(4, 4)
	zonesB := b.Zones(4, 4)
	require.Equal(t, a.Hospitals(6, zones), b.Hospitals(6, zonesB))
	require.Equal(t, a.Ambulances(3, zones), b.Ambulances(3, zonesB))
	require.Equal(t, a.Patient(zones), b.Patient(zonesB))
}
