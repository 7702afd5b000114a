package sim

import "fmt"

// Config holds the fixed parameters of one environment instance. The state
// and action space sizes are derived from it and never change afterwards;
// changing any field requires constructing a new environment.
type Config struct {
	Rows       int `json:"rows"`
	Cols       int `json:"cols"`
	Hospitals  int `json:"hospitals"`
	Ambulances int `json:"ambulances"`
}

// SetDefaults applies the reference 4x4 rural scenario.
func (c *Config) SetDefaults() {
	if c.Rows == 0 {
		c.Rows = 4
	}
	if c.Cols == 0 {
		c.Cols = 4
	}
	if c.Hospitals == 0 {
		c.Hospitals = 6
	}
	if c.Ambulances == 0 {
		c.Ambulances = 3
	}
}

// Validate checks mandatory fields. Errors here are fatal setup errors, not
// per-step outcomes.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("grid %dx%d must have positive dimensions", c.Rows, c.Cols)
	}
	if c.Hospitals <= 0 {
		return fmt.Errorf("hospital count %d must be positive", c.Hospitals)
	}
	if c.Ambulances <= 0 {
		return fmt.Errorf("ambulance count %d must be positive", c.Ambulances)
	}
	return nil
}

// NumZones returns the zone count of the configured grid.
func (c Config) NumZones() int { return c.Rows * c.Cols }

// NumStates returns the size of the discretized state space:
// severity(3) x nearest ambulance x specialty-satisfiable flag(2).
func (c Config) NumStates() int { return 3 * c.Ambulances * 2 }

// NumActions returns the size of the joint (ambulance, hospital) action space.
func (c Config) NumActions() int { return c.Ambulances * c.Hospitals }

// EncodeAction packs an (ambulance, hospital) pair into a single action index.
func (c Config) EncodeAction(ambulance, hospital int) int {
	return ambulance*c.Hospitals + hospital
}

// DecodeAction unpacks an action index into its (ambulance, hospital) pair.
func (c Config) DecodeAction(action int) (ambulance, hospital int) {
	return action / c.Hospitals, action % c.Hospitals
}
