// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/nutanix"
	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/errtypes"
	"github.com/openmigrate/n2h-helper/staging"
	"github.com/openmigrate/n2h-helper/vm"
)

var exportVMName string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a VM's disks from the source cluster into staging",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		ctx := context.Background()
		client := nutanix.NewNutanixClient(cfg.Nutanix)

		info, err := client.GetVMByName(ctx, exportVMName)
		if err != nil {
			return err
		}
		if info.PowerState == constants.PowerStateOn {
			return &errtypes.PreconditionError{VM: exportVMName, Reason: "VM is powered on"}
		}

		dir := staging.NewDir(cfg.Transfer.StagingMount, exportVMName)
		if err := dir.Ensure(); err != nil {
			return err
		}

		for i := range info.VMDisks {
			disk := &info.VMDisks[i]
			imageUUID, err := client.CreateDiskImage(ctx, fmt.Sprintf("export-%s-%d", exportVMName, disk.Index), disk.UUID)
			if err != nil {
				return err
			}
			if err := client.WaitForImageReady(ctx, imageUUID); err != nil {
				return err
			}
			rawPath := dir.DiskPath(disk.Index, "raw")
			err = client.DownloadImage(ctx, imageUUID, rawPath, func(copied, total int64, speed float64) {
				log.Printf("Disk %d: %s of %s (%s/s)", disk.Index,
					humanize.Bytes(uint64(copied)), humanize.Bytes(uint64(total)), humanize.Bytes(uint64(speed)))
			})
			if err != nil {
				return err
			}
			disk.Path = rawPath
			if err := client.DeleteImage(ctx, imageUUID); err != nil {
				log.Printf("Failed to delete export image %s: %s", imageUUID, err)
			}
		}

		return vm.ConfigFromVMInfo(info).Save(dir.ConfigPath())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportVMName, "vm", "", "name of the source VM (required)")
	exportCmd.MarkFlagRequired("vm")
	rootCmd.AddCommand(exportCmd)
}
