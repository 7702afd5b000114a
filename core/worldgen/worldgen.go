package worldgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kilianp07/ruraldispatch/core/model"
)

// Config controls the display coordinates attached to generated zones.
type Config struct {
	// CenterLat and CenterLon anchor the pseudo lat/lon grid.
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.CenterLat == 0 {
		c.CenterLat = 17.55
	}
	if c.CenterLon == 0 {
		c.CenterLon = 78.40
	}
}

// Validate checks the configured coordinates.
func (c Config) Validate() error {
	if c.CenterLat < -90 || c.CenterLat > 90 {
		return fmt.Errorf("center latitude %v outside [-90,90]", c.CenterLat)
	}
	if c.CenterLon < -180 || c.CenterLon > 180 {
		return fmt.Errorf("center longitude %v outside [-180,180]", c.CenterLon)
	}
	return nil
}

// Rural draws randomized hospitals, ambulances and patients for one event.
// All randomness flows through the injected source so runs are reproducible.
type Rural struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Rural generator. A nil rng falls back to a time-seeded source.
func New(cfg Config, rng *rand.Rand) *Rural {
	cfg.SetDefaults()
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Rural{cfg: cfg, rng: rng}
}

// Zones builds the rows×cols grid with row-major IDs. The lat/lon fields are
// display sugar and never enter the simulation.
func (g *Rural) Zones(rows, cols int) []model.Zone {
	zones := make([]model.Zone, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			zones = append(zones, model.Zone{
				ID:  r*cols + c,
				Row: r,
				Col: c,
				Lat: g.cfg.CenterLat + (float64(r)-float64(rows)/2)*0.02,
				Lon: g.cfg.CenterLon + (float64(c)-float64(cols)/2)*0.02,
			})
		}
	}
	return zones
}

// Hospitals draws n hospitals placed in random zones with randomized bed, ICU
// and specialty attributes. Every hospital provides general care.
func (g *Rural) Hospitals(n int, zones []model.Zone) []model.Hospital {
	hospitals := make([]model.Hospital, n)
	for i := range hospitals {
		total := 10 + g.rng.Intn(51)
		icuTotal := g.rng.Intn(9)
		icuAvailable := 0
		if icuTotal > 0 {
			icuAvailable = g.rng.Intn(icuTotal + 1)
		}
		available := g.rng.Intn(min(10, total) + 1)
		hospitals[i] = model.Hospital{
			ID:            i,
			Zone:          zones[g.rng.Intn(len(zones))].ID,
			TotalBeds:     total,
			AvailableBeds: available,
			ICUTotal:      icuTotal,
			ICUAvailable:  icuAvailable,
			Specialties: map[model.Specialty]bool{
				model.SpecTrauma:     g.rng.Intn(3) == 0,
				model.SpecCardiac:    g.rng.Intn(2) == 0,
				model.SpecMaternity:  g.rng.Intn(2) == 0,
				model.SpecPediatrics: g.rng.Intn(3) == 0,
				model.SpecGeneral:    true,
			},
		}
	}
	return hospitals
}

// Ambulances places n idle ambulances in random zones.
func (g *Rural) Ambulances(n int, zones []model.Zone) []model.Ambulance {
	ambulances := make([]model.Ambulance, n)
	for i := range ambulances {
		ambulances[i] = model.Ambulance{
			ID:     i,
			Zone:   zones[g.rng.Intn(len(zones))].ID,
			Status: model.StatusIdle,
		}
	}
	return ambulances
}

var severityWeights = []float64{0.50, 0.35, 0.15}

var specialtyChoices = []struct {
	spec   model.Specialty
	weight float64
}{
	{model.SpecTrauma, 0.15},
	{model.SpecCardiac, 0.15},
	{model.SpecMaternity, 0.10},
	{model.SpecPediatrics, 0.10},
	{model.SpecNone, 0.50},
}

// Patient spawns one patient in a random zone. Severity and required
// specialty are drawn independently with fixed weights.
func (g *Rural) Patient(zones []model.Zone) model.Patient {
	sev := model.Severity(g.weightedPick(severityWeights))
	weights := make([]float64, len(specialtyChoices))
	for i, c := range specialtyChoices {
		weights[i] = c.weight
	}
	return model.Patient{
		Zone:              zones[g.rng.Intn(len(zones))].ID,
		Severity:          sev,
		RequiredSpecialty: specialtyChoices[g.weightedPick(weights)].spec,
	}
}

func (g *Rural) weightedPick(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := g.rng.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return i
		}
	}
	return len(weights) - 1
}
