package sim

import (
	"fmt"
	"math"

	"github.com/kilianp07/ruraldispatch/core/model"
)

// Reward constants of the dispatch model. Travel is charged per hop, all
// penalties are additive and none are mutually exclusive.
const (
	minutesPerHop        = 6.0
	successBonus         = 50.0
	invalidActionPenalty = -50.0
	notIdlePenalty       = -40.0
	noICUPenalty         = -40.0
	noBedsPenalty        = -20.0
	noSpecialtyPenalty   = -10.0
	failurePenalty       = -5.0
	criticalTimeFactor   = 1.5
)

// Outcome reason tags. Soft constraint tags are concatenated with a trailing
// separator; the hard validity tags stand alone.
const (
	ReasonInvalidAction = "invalid_action"
	ReasonNotIdle       = "ambulance_not_idle"
	ReasonNoICU         = "no_icu;"
	ReasonNoBeds        = "no_beds;"
	ReasonNoSpecialty   = "no_specialty;"
)

// WorldGen yields the entities for one emergency event. The environment only
// requires the returned entities to respect the model invariants; how they
// are drawn is the generator's business.
type WorldGen interface {
	Zones(rows, cols int) []model.Zone
	Hospitals(n int, zones []model.Zone) []model.Hospital
	Ambulances(n int, zones []model.Zone) []model.Ambulance
	Patient(zones []model.Zone) model.Patient
}

// Outcome describes how one dispatch decision played out.
type Outcome struct {
	Ambulance     int     `json:"ambulance"`
	Hospital      int     `json:"hospital"`
	DistanceHops  int     `json:"dist_hops"`
	TravelTimeMin float64 `json:"travel_time_min"`
	Success       bool    `json:"success"`
	Reason        string  `json:"reason"`
}

// Snapshot is a read-only projection of the current event for display and
// logging. It must not be fed back into Step.
type Snapshot struct {
	Patient    model.Patient
	Ambulances []model.Ambulance
	Hospitals  []model.Hospital
}

// Env models one emergency event as a one-shot decision problem: the agent
// picks an (ambulance, hospital) pair and the event terminates. Capacity and
// specialty constraints surface only through the reward signal.
type Env struct {
	cfg        Config
	gen        WorldGen
	zones      []model.Zone
	hospitals  []model.Hospital
	ambulances []model.Ambulance
	patient    model.Patient
	done       bool
}

// New builds an environment and primes it with a first event. Configuration
// errors fail fast here, before any episode runs.
func New(cfg Config, gen WorldGen) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if gen == nil {
		return nil, fmt.Errorf("env: world generator is required")
	}
	e := &Env{cfg: cfg, gen: gen, zones: gen.Zones(cfg.Rows, cfg.Cols)}
	if got, want := len(e.zones), cfg.NumZones(); got != want {
		return nil, fmt.Errorf("env: generator yielded %d zones for a %dx%d grid, want %d", got, cfg.Rows, cfg.Cols, want)
	}
	e.Reset()
	return e, nil
}

// Config returns the immutable environment configuration.
func (e *Env) Config() Config { return e.cfg }

// NumStates returns the derived state space size.
func (e *Env) NumStates() int { return e.cfg.NumStates() }

// NumActions returns the derived action space size.
func (e *Env) NumActions() int { return e.cfg.NumActions() }

// Reset regenerates hospitals, ambulances and one patient, discarding any bed
// counts mutated by the previous event, and returns the encoded state index.
func (e *Env) Reset() int {
	e.hospitals = e.gen.Hospitals(e.cfg.Hospitals, e.zones)
	e.ambulances = e.gen.Ambulances(e.cfg.Ambulances, e.zones)
	e.patient = e.gen.Patient(e.zones)
	e.done = false
	return e.encodeState()
}

// encodeState compresses the event into a small discrete index:
// severity, nearest ambulance, and whether any hospital can satisfy the
// required specialty with a free bed. Collisions are a deliberate
// compression, not a bug.
func (e *Env) encodeState() int {
	nearest := 0
	best := math.MaxInt
	for i, a := range e.ambulances {
		d := model.ManhattanHops(e.patient.Zone, a.Zone, e.cfg.Cols)
		if d < best {
			best, nearest = d, i
		}
	}
	satisfiable := 0
	if e.patient.RequiredSpecialty == model.SpecNone {
		satisfiable = 1
	} else {
		for _, h := range e.hospitals {
			if h.HasSpecialty(e.patient.RequiredSpecialty) && h.AvailableBeds > 0 {
				satisfiable = 1
				break
			}
		}
	}
	return int(e.patient.Severity)*(e.cfg.Ambulances*2) + nearest*2 + satisfiable
}

// Step resolves the event with the chosen action. It always terminates the
// event and returns the recomputed state index, the scalar reward, the
// terminal flag and the outcome record. Boundary capacity values
// (available == 0) fail, they do not pass.
func (e *Env) Step(action int) (state int, reward float64, done bool, out Outcome) {
	ambIdx, hospIdx := e.cfg.DecodeAction(action)
	out = Outcome{Ambulance: ambIdx, Hospital: hospIdx}

	if action < 0 || ambIdx >= e.cfg.Ambulances || hospIdx >= e.cfg.Hospitals {
		e.done = true
		out.Reason = ReasonInvalidAction
		return e.encodeState(), invalidActionPenalty, true, out
	}

	amb := &e.ambulances[ambIdx]
	hosp := &e.hospitals[hospIdx]

	if amb.Status != model.StatusIdle {
		e.done = true
		out.Reason = ReasonNotIdle
		return e.encodeState(), notIdlePenalty, true, out
	}

	hops := model.ManhattanHops(e.patient.Zone, amb.Zone, e.cfg.Cols) +
		model.ManhattanHops(amb.Zone, hosp.Zone, e.cfg.Cols)
	travel := float64(hops) * minutesPerHop
	out.DistanceHops = hops
	out.TravelTimeMin = travel

	success := true
	reason := ""

	if e.patient.Severity == model.SeverityCritical && hosp.ICUAvailable <= 0 {
		reward += noICUPenalty
		success = false
		reason += ReasonNoICU
	}
	if hosp.AvailableBeds <= 0 {
		reward += noBedsPenalty
		success = false
		reason += ReasonNoBeds
	}
	spec := e.patient.RequiredSpecialty
	if spec != model.SpecNone && !hosp.HasSpecialty(spec) {
		// Soft penalty: a specialty mismatch alone does not fail the dispatch.
		reward += noSpecialtyPenalty
		reason += ReasonNoSpecialty
	}

	timePenalty := travel
	if e.patient.Severity == model.SeverityCritical {
		timePenalty *= criticalTimeFactor
	}
	reward -= timePenalty / 2.0

	if success {
		reward += successBonus
		if hosp.AvailableBeds > 0 {
			hosp.AvailableBeds--
		}
		if e.patient.Severity == model.SeverityCritical && hosp.ICUAvailable > 0 {
			hosp.ICUAvailable--
		}
	} else {
		reward += failurePenalty
	}

	e.done = true
	out.Success = success
	out.Reason = reason
	return e.encodeState(), reward, true, out
}

// Snapshot returns a deep copy of the current event for display. Mutating the
// returned entities has no effect on the environment.
func (e *Env) Snapshot() Snapshot {
	s := Snapshot{
		Patient:    e.patient,
		Ambulances: make([]model.Ambulance, len(e.ambulances)),
		Hospitals:  make([]model.Hospital, len(e.hospitals)),
	}
	copy(s.Ambulances, e.ambulances)
	for i, h := range e.hospitals {
		s.Hospitals[i] = h.Clone()
	}
	return s
}

// Done reports whether the current event has been resolved.
func (e *Env) Done() bool { return e.done }
