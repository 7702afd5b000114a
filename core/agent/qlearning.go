package agent

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Config holds the Q-learning hyperparameters, fixed at construction.
type Config struct {
	// Alpha is the learning rate in (0,1].
	Alpha float64 `json:"alpha"`
	// Gamma is the discount factor in (0,1].
	Gamma float64 `json:"gamma"`
	// Epsilon is the initial exploration rate in [0,1].
	Epsilon float64 `json:"epsilon"`
	// MinEpsilon floors the exploration rate.
	MinEpsilon float64 `json:"min_epsilon"`
	// Decay multiplies epsilon after every learning step.
	Decay float64 `json:"decay"`
}

// SetDefaults applies the reference training hyperparameters.
func (c *Config) SetDefaults() {
	if c.Alpha == 0 {
		c.Alpha = 0.1
	}
	if c.Gamma == 0 {
		c.Gamma = 0.95
	}
	if c.Epsilon == 0 {
		c.Epsilon = 0.5
	}
	if c.MinEpsilon == 0 {
		c.MinEpsilon = 0.01
	}
	if c.Decay == 0 {
		c.Decay = 0.9992
	}
}

// Validate checks the hyperparameter ranges.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha %v outside (0,1]", c.Alpha)
	}
	if c.Gamma <= 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma %v outside (0,1]", c.Gamma)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon %v outside [0,1]", c.Epsilon)
	}
	if c.MinEpsilon < 0 || c.MinEpsilon > c.Epsilon {
		return fmt.Errorf("min epsilon %v outside [0,%v]", c.MinEpsilon, c.Epsilon)
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return fmt.Errorf("decay %v outside (0,1]", c.Decay)
	}
	return nil
}

// QAgent learns a tabular action-value function with one-step temporal
// difference updates. It is the only owner and mutator of the table.
type QAgent struct {
	cfg      Config
	nStates  int
	nActions int
	q        *mat.Dense
	epsilon  float64
	rng      *rand.Rand

	// scratch buffer for greedy tie-breaking
	best []int
}

// New builds an agent with a zero-initialized table of shape
// (nStates, nActions). The shape is fixed for the agent's lifetime. A nil rng
// falls back to a time-seeded source.
func New(cfg Config, nStates, nActions int, rng *rand.Rand) (*QAgent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("agent config: %w", err)
	}
	if nStates <= 0 || nActions <= 0 {
		return nil, fmt.Errorf("agent: table shape %dx%d must be positive", nStates, nActions)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QAgent{
		cfg:      cfg,
		nStates:  nStates,
		nActions: nActions,
		q:        mat.NewDense(nStates, nActions, nil),
		epsilon:  cfg.Epsilon,
		rng:      rng,
		best:     make([]int, 0, nActions),
	}, nil
}

// SelectAction returns an epsilon-greedy action for the state. The greedy
// path breaks ties uniformly at random among all maximizing actions, so a
// freshly zeroed table carries no positional bias.
func (a *QAgent) SelectAction(state int) int {
	if a.rng.Float64() < a.epsilon {
		return a.rng.Intn(a.nActions)
	}
	row := a.q.RawRowView(state)
	maxv := math.Inf(-1)
	a.best = a.best[:0]
	for i, v := range row {
		switch {
		case v > maxv:
			maxv = v
			a.best = append(a.best[:0], i)
		case v == maxv:
			a.best = append(a.best, i)
		}
	}
	return a.best[a.rng.Intn(len(a.best))]
}

// Learn applies the one-step TD update
//
//	Q[s,a] += alpha * (r + gamma * max_a' Q[s',a'] - Q[s,a])
//
// and then decays epsilon toward its floor. Decay happens on every call, so
// exploration shrinks monotonically and only through learning.
func (a *QAgent) Learn(state, action int, reward float64, next int) {
	bestNext := mat.Max(a.q.RowView(next))
	cur := a.q.At(state, action)
	a.q.Set(state, action, cur+a.cfg.Alpha*(reward+a.cfg.Gamma*bestNext-cur))
	if a.epsilon > a.cfg.MinEpsilon {
		a.epsilon *= a.cfg.Decay
		if a.epsilon < a.cfg.MinEpsilon {
			a.epsilon = a.cfg.MinEpsilon
		}
	}
}

// Epsilon returns the current exploration rate.
func (a *QAgent) Epsilon() float64 { return a.epsilon }

// Table returns the agent's action-value table. Callers must treat it as
// read-only; the agent remains its sole mutator.
func (a *QAgent) Table() *mat.Dense { return a.q }
