package cmd

import "github.com/spf13/cobra"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "ruraldispatch",
	Short: "Rural emergency dispatch simulation and RL trainer",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
