package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ruraldispatch/config"
	"github.com/kilianp07/ruraldispatch/core/agent"
	"github.com/kilianp07/ruraldispatch/core/sim"
	"github.com/kilianp07/ruraldispatch/core/trainer"
	"github.com/kilianp07/ruraldispatch/core/worldgen"
	"github.com/kilianp07/ruraldispatch/infra/logger"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the dispatch policy",
	RunE:  runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("train")

	rng := rand.New(rand.NewSource(cfg.RandSeed()))
	env, err := sim.New(cfg.Sim, worldgen.New(cfg.World, rng))
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	ag, err := agent.New(cfg.Agent, env.NumStates(), env.NumActions(), rng)
	if err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	tr, err := trainer.New(cfg.Train, env, ag, logg)
	if err != nil {
		return fmt.Errorf("trainer: %w", err)
	}

	res, err := tr.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logg.Warnf("training interrupted")
			return nil
		}
		return err
	}
	logg.Infof("training complete: run %s, %d episodes, final epsilon %.3f",
		res.RunID, res.Episodes, res.FinalEpsilon)
	return nil
}
