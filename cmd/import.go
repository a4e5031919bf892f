// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/importer"
	"github.com/openmigrate/n2h-helper/monitor"
	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/staging"
	"github.com/openmigrate/n2h-helper/vm"
)

var (
	importVMName     string
	importDataVolume bool
	importStorageCls string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a VM's staged qcow2 images into target volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		ctx := context.Background()

		harvesterClient, err := harvester.NewHarvesterClient(cfg.Harvester)
		if err != nil {
			return err
		}
		defer harvesterClient.Close()

		dir := staging.NewDir(cfg.Transfer.StagingMount, importVMName)
		vmCfg, err := vm.LoadConfig(dir.ConfigPath())
		if err != nil {
			return err
		}

		mon := monitor.NewMonitor(harvesterClient)
		imp := importer.NewImporter(harvesterClient, mon,
			cfg.Transfer.NFSServer, cfg.Transfer.NFSPath, importStorageCls)

		onEvent := func(ev monitor.Event) {
			log.Printf("Import [%s] %s", ev.Stage, ev.Message)
		}
		for i := range vmCfg.Disks {
			disk := &vmCfg.Disks[i]
			if disk.Path == "" {
				disk.Path = dir.DiskPath(disk.Index, "qcow2")
			}
			var volName string
			if importDataVolume {
				volName, err = imp.ImportDataVolume(ctx, importVMName, *disk, cfg.Transfer.HTTPServerIP, onEvent)
			} else {
				volName, err = imp.ImportDiskSparse(ctx, importVMName, *disk, onEvent)
			}
			if err != nil {
				return err
			}
			disk.VolumeName = volName
			log.Printf("Imported disk %d into volume %s", disk.Index, volName)
		}

		// Persist the volume names for the create step.
		return vmCfg.Save(dir.ConfigPath())
	},
}

func init() {
	importCmd.Flags().StringVar(&importVMName, "vm", "", "name of the VM whose staged disks to import (required)")
	importCmd.Flags().BoolVar(&importDataVolume, "datavolume", false, "import via CDI DataVolume instead of a conversion pod")
	importCmd.Flags().StringVar(&importStorageCls, "storage-class", "", "storage class for target volumes")
	importCmd.MarkFlagRequired("vm")
	rootCmd.AddCommand(importCmd)
}
