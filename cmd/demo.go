package cmd

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/kilianp07/ruraldispatch/config"
	"github.com/kilianp07/ruraldispatch/core/agent"
	"github.com/kilianp07/ruraldispatch/core/model"
	"github.com/kilianp07/ruraldispatch/core/sim"
	"github.com/kilianp07/ruraldispatch/core/trainer"
	"github.com/kilianp07/ruraldispatch/core/worldgen"
)

var demoEvents int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay showcase events with the learned policy",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().IntVarP(&demoEvents, "events", "n", 5, "number of events to replay")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.RandSeed()))
	env, err := sim.New(cfg.Sim, worldgen.New(cfg.World, rng))
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	tablePath := filepath.Join(cfg.Train.ResultsDir, trainer.TableFile)
	q, err := agent.LoadTable(tablePath, env.NumStates(), env.NumActions())
	if err != nil {
		fmt.Printf("%s %v\n", aurora.Yellow("no usable table:"), err)
		fmt.Println("falling back to action 0")
		q = nil
	}

	for i := 0; i < demoEvents; i++ {
		state := env.Reset()
		snap := env.Snapshot()

		fmt.Printf("\n--- Event %d\n", i+1)
		printPatient(snap.Patient)
		fmt.Println("Hospitals (id, zone, beds, icu, specialties):")
		for _, h := range snap.Hospitals {
			fmt.Printf("  H%d z%d beds %d/%d icu %d %v\n",
				h.ID, h.Zone, h.AvailableBeds, h.TotalBeds, h.ICUAvailable, specialtyTags(h))
		}
		fmt.Print("Ambulances (id, zone):")
		for _, a := range snap.Ambulances {
			fmt.Printf(" A%d@z%d", a.ID, a.Zone)
		}
		fmt.Println()

		action := 0
		if q != nil {
			action = agent.Greedy(q, state)
		}
		ambIdx, hospIdx := env.Config().DecodeAction(action)
		fmt.Printf("Selected ambulance %d -> hospital %d\n", ambIdx, hospIdx)

		_, reward, _, out := env.Step(action)
		verdict := aurora.Green("delivered")
		if !out.Success {
			verdict = aurora.Red("failed " + out.Reason)
		}
		fmt.Printf("Result: %s, %d hops, %.0f min, reward %.2f\n",
			verdict, out.DistanceHops, out.TravelTimeMin, reward)
	}
	return nil
}

func printPatient(p model.Patient) {
	sev := aurora.Green(p.Severity.String())
	switch p.Severity {
	case model.SeveritySevere:
		sev = aurora.Yellow(p.Severity.String())
	case model.SeverityCritical:
		sev = aurora.Red(p.Severity.String())
	}
	spec := "none"
	if p.RequiredSpecialty != model.SpecNone {
		spec = string(p.RequiredSpecialty)
	}
	fmt.Printf("Patient: zone %d, severity %s, specialty %s\n", p.Zone, sev, spec)
}

func specialtyTags(h model.Hospital) []string {
	var tags []string
	for _, s := range model.KnownSpecialties {
		if h.HasSpecialty(s) {
			tags = append(tags, string(s))
		}
	}
	return tags
}
