// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/nutanix"
	"github.com/openmigrate/n2h-helper/pkg/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the VMs on the source cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		vms, err := nutanix.NewNutanixClient(cfg.Nutanix).ListVMs(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPOWER\tCPU\tMEMORY\tDISKS\tBOOT")
		for _, v := range vms {
			var total int64
			for _, d := range v.VMDisks {
				total += d.Size
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d (%s)\t%s\n",
				v.Name, v.PowerState, v.CPU,
				humanize.IBytes(uint64(v.MemoryMB)*1024*1024),
				len(v.VMDisks), humanize.Bytes(uint64(total)), v.BootType)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
