package trainer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/ruraldispatch/core/agent"
	"github.com/kilianp07/ruraldispatch/core/logger"
	"github.com/kilianp07/ruraldispatch/core/sim"
)

// Artifact names written into the results directory.
const (
	TableFile   = "q_table.bin"
	RewardsFile = "rewards.bin"
	CurveFile   = "reward_curve.html"
	MetaFile    = "run.json"
)

// Config controls a training run.
type Config struct {
	// Episodes is the number of single-decision episodes to run.
	Episodes int `json:"episodes"`
	// ReportEvery sets the window for mean-reward progress reports. The
	// reports are visibility only and have no effect on learning.
	ReportEvery int `json:"report_every"`
	// ResultsDir receives the persisted table, reward trace and curve.
	ResultsDir string `json:"results_dir"`
	// Curve toggles rendering of the smoothed reward curve.
	Curve bool `json:"curve"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Episodes == 0 {
		c.Episodes = 5000
	}
	if c.ReportEvery == 0 {
		c.ReportEvery = 500
	}
	if c.ResultsDir == "" {
		c.ResultsDir = "results"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes %d must be positive", c.Episodes)
	}
	if c.ReportEvery <= 0 {
		return fmt.Errorf("report_every %d must be positive", c.ReportEvery)
	}
	if c.ResultsDir == "" {
		return fmt.Errorf("results dir is required")
	}
	return nil
}

// Trainer drives repeated reset/select/step/learn cycles and owns the
// persistence of the learned table.
type Trainer struct {
	cfg   Config
	env   *sim.Env
	agent *agent.QAgent
	log   logger.Logger
	runID string
}

// Result summarises a completed training run.
type Result struct {
	RunID        string
	Episodes     int
	Rewards      []float64
	FinalEpsilon float64
}

// New builds a trainer. A nil logger is replaced by a no-op one.
func New(cfg Config, env *sim.Env, ag *agent.QAgent, log logger.Logger) (*Trainer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("trainer config: %w", err)
	}
	if env == nil || ag == nil {
		return nil, fmt.Errorf("trainer: environment and agent are required")
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Trainer{cfg: cfg, env: env, agent: ag, log: log, runID: uuid.NewString()}, nil
}

// RunID returns the identifier stamped into this run's artifacts.
func (t *Trainer) RunID() string { return t.runID }

// Run executes the configured number of episodes and persists the artifacts.
// Each episode is one independent event resolved by a single decision; the
// only state carried across episodes is the action-value table. The context
// is checked between episodes so an interrupt stops the run cleanly.
func (t *Trainer) Run(ctx context.Context) (*Result, error) {
	t.log.Infof("run %s: training %d episodes", t.runID, t.cfg.Episodes)
	rewards := make([]float64, 0, t.cfg.Episodes)

	for ep := 1; ep <= t.cfg.Episodes; ep++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		state := t.env.Reset()
		action := t.agent.SelectAction(state)
		next, reward, _, out := t.env.Step(action)
		t.agent.Learn(state, action, reward, next)
		rewards = append(rewards, reward)
		observeEpisode(reward, t.agent.Epsilon(), out)

		if ep%t.cfg.ReportEvery == 0 {
			avg := stat.Mean(rewards[ep-t.cfg.ReportEvery:], nil)
			t.log.Infof("episode %d: avg reward last %d = %.2f, epsilon = %.3f",
				ep, t.cfg.ReportEvery, avg, t.agent.Epsilon())
		}
	}

	if err := t.persist(rewards); err != nil {
		return nil, err
	}
	t.log.Infof("run %s: artifacts written to %s", t.runID, t.cfg.ResultsDir)
	return &Result{
		RunID:        t.runID,
		Episodes:     t.cfg.Episodes,
		Rewards:      rewards,
		FinalEpsilon: t.agent.Epsilon(),
	}, nil
}

type runMeta struct {
	RunID        string    `json:"run_id"`
	Episodes     int       `json:"episodes"`
	States       int       `json:"n_states"`
	Actions      int       `json:"n_actions"`
	Hospitals    int       `json:"hospitals"`
	Ambulances   int       `json:"ambulances"`
	FinalEpsilon float64   `json:"final_epsilon"`
	CompletedAt  time.Time `json:"completed_at"`
}

// persist writes the table, the reward trace, the run metadata and
// optionally the smoothed curve.
func (t *Trainer) persist(rewards []float64) error {
	if err := os.MkdirAll(t.cfg.ResultsDir, 0o755); err != nil {
		return fmt.Errorf("results dir: %w", err)
	}
	if err := agent.SaveTable(filepath.Join(t.cfg.ResultsDir, TableFile), t.agent.Table()); err != nil {
		return err
	}

	trace := mat.NewVecDense(len(rewards), rewards)
	data, err := trace.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal rewards: %w", err)
	}
	if err := os.WriteFile(filepath.Join(t.cfg.ResultsDir, RewardsFile), data, 0o644); err != nil {
		return fmt.Errorf("write rewards: %w", err)
	}

	envCfg := t.env.Config()
	meta := runMeta{
		RunID:        t.runID,
		Episodes:     len(rewards),
		States:       envCfg.NumStates(),
		Actions:      envCfg.NumActions(),
		Hospitals:    envCfg.Hospitals,
		Ambulances:   envCfg.Ambulances,
		FinalEpsilon: t.agent.Epsilon(),
		CompletedAt:  time.Now().UTC(),
	}
	buf, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(t.cfg.ResultsDir, MetaFile), buf, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	if t.cfg.Curve {
		if err := RenderCurve(filepath.Join(t.cfg.ResultsDir, CurveFile), rewards); err != nil {
			return err
		}
	}
	return nil
}

// observeEpisode feeds the prometheus collectors for one episode.
func observeEpisode(reward, epsilon float64, out sim.Outcome) {
	episodesTotal.Inc()
	episodeReward.Observe(reward)
	epsilonGauge.Set(epsilon)
	if out.Success {
		outcomesTotal.WithLabelValues("success").Inc()
		return
	}
	reason := strings.TrimSuffix(out.Reason, ";")
	for _, tag := range strings.Split(reason, ";") {
		if tag != "" {
			outcomesTotal.WithLabelValues(tag).Inc()
		}
	}
}
