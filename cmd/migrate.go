// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/importer"
	"github.com/openmigrate/n2h-helper/migrate"
	"github.com/openmigrate/n2h-helper/monitor"
	"github.com/openmigrate/n2h-helper/nutanix"
	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/qemu"
	"github.com/openmigrate/n2h-helper/staging"
)

var (
	migrateVMName     string
	migrateCompress   bool
	migrateNetwork    string
	migrateDataVolume bool
	migrateCleanup    bool
	migrateStorageCls string
	migrateJSONResult bool
	migratePowerOff   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the full migration workflow for one VM",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if !staging.IsMounted(cfg.Transfer.StagingMount) {
			log.Printf("Warning: %s is not a mount point, staging to local disk", cfg.Transfer.StagingMount)
		}

		harvesterClient, err := harvester.NewHarvesterClient(cfg.Harvester)
		if err != nil {
			return err
		}
		defer harvesterClient.Close()

		mon := monitor.NewMonitor(harvesterClient)
		imp := importer.NewImporter(harvesterClient, mon,
			cfg.Transfer.NFSServer, cfg.Transfer.NFSPath, migrateStorageCls)

		m := &migrate.Migrate{
			Nutanix:       nutanix.NewNutanixClient(cfg.Nutanix),
			Harvester:     harvesterClient,
			Qemu:          qemu.NewQemuOps(),
			Importer:      imp,
			Staging:       staging.NewDir(cfg.Transfer.StagingMount, migrateVMName),
			VMName:        migrateVMName,
			Compress:      migrateCompress,
			NetworkName:   migrateNetwork,
			UseDataVolume: migrateDataVolume,
			ServeIP:       cfg.Transfer.HTTPServerIP,
			CleanupAfter:  migrateCleanup,
			AutoPowerOff:  migratePowerOff,
		}
		result := m.MigrateVM(context.Background())

		if migrateJSONResult {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}
		if !result.Success {
			return errors.Errorf("migration of %s failed: %s", migrateVMName, result.Error)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateVMName, "vm", "", "name of the source VM (required)")
	migrateCmd.Flags().BoolVar(&migrateCompress, "compress", true, "compress the qcow2 image")
	migrateCmd.Flags().StringVar(&migrateNetwork, "network", "", "target Multus network name")
	migrateCmd.Flags().BoolVar(&migrateDataVolume, "datavolume", false, "import via CDI DataVolume instead of a conversion pod")
	migrateCmd.Flags().BoolVar(&migrateCleanup, "cleanup", false, "remove staged artifacts after a successful migration")
	migrateCmd.Flags().StringVar(&migrateStorageCls, "storage-class", "", "storage class for target volumes")
	migrateCmd.Flags().BoolVar(&migrateJSONResult, "json", false, "print the structured result as JSON")
	migrateCmd.Flags().BoolVar(&migratePowerOff, "power-off", false, "power off a running source VM instead of refusing")
	migrateCmd.MarkFlagRequired("vm")
	rootCmd.AddCommand(migrateCmd)
}
