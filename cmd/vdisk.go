// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/nutanix"
	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/staging"
)

var (
	vdiskVMName      string
	vdiskCVMPassword string
	vdiskCopyFrom    string
)

var vdiskCmd = &cobra.Command{
	Use:   "vdisk",
	Short: "Locate a VM's backing files on the storage containers",
	Long: `vdisk connects to a Controller VM over SSH and prints the path of
each disk's backing file relative to its container's NFS export. With
the container whitelisted for NFS access the files can be copied to
staging directly, skipping the image service round trip.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		info, err := nutanix.NewNutanixClient(cfg.Nutanix).GetVMByName(context.Background(), vdiskVMName)
		if err != nil {
			return err
		}

		cvm, err := nutanix.NewCVMClient(cfg.Nutanix.CVMIP, cfg.Nutanix.CVMUser, vdiskCVMPassword)
		if err != nil {
			return err
		}
		defer cvm.Close()

		var dir *staging.Dir
		if vdiskCopyFrom != "" {
			dir = staging.NewDir(cfg.Transfer.StagingMount, vdiskVMName)
			if err := dir.Ensure(); err != nil {
				return err
			}
		}

		for _, disk := range info.VMDisks {
			path, err := cvm.FindVDiskPath(disk.UUID)
			if err != nil {
				return err
			}
			fmt.Printf("disk %d (%s): %s\n", disk.Index, disk.UUID, path)

			if dir == nil {
				continue
			}
			src := filepath.Join(vdiskCopyFrom, path)
			dest := dir.DiskPath(disk.Index, "raw")
			err = nutanix.ExportVDiskFromMount(context.Background(), src, dest,
				func(copied, total int64, speed float64) {
					log.Printf("Disk %d: %s of %s (%s/s)", disk.Index,
						humanize.Bytes(uint64(copied)), humanize.Bytes(uint64(total)), humanize.Bytes(uint64(speed)))
				})
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	vdiskCmd.Flags().StringVar(&vdiskVMName, "vm", "", "name of the source VM (required)")
	vdiskCmd.Flags().StringVar(&vdiskCVMPassword, "cvm-password", "", "CVM SSH password (required)")
	vdiskCmd.Flags().StringVar(&vdiskCopyFrom, "copy-from", "", "local mount of the storage container; copies each vdisk into staging")
	vdiskCmd.MarkFlagRequired("vm")
	vdiskCmd.MarkFlagRequired("cvm-password")
	rootCmd.AddCommand(vdiskCmd)
}
