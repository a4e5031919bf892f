// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "n2h-helper",
	Short: "Migrate Nutanix AHV virtual machines to Harvester",
	Long: `n2h-helper exports VM disks from a Nutanix AHV cluster, converts
them to qcow2 and re-creates the VMs on a Harvester cluster backed by
KubeVirt. The full workflow runs with "migrate"; the individual phases
are also exposed as subcommands for resuming partial runs.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "path to the config file")
}
