// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/pkg/config"
	"github.com/openmigrate/n2h-helper/qemu"
	"github.com/openmigrate/n2h-helper/staging"
)

var (
	convertVMName   string
	convertCompress bool
	convertKeepRaw  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a VM's staged raw images to qcow2",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		dir := staging.NewDir(cfg.Transfer.StagingMount, convertVMName)
		names, err := dir.ListFiles()
		if err != nil {
			return err
		}

		ops := qemu.NewQemuOps()
		for _, name := range names {
			if !strings.HasSuffix(name, ".raw") {
				continue
			}
			res, err := ops.ConvertRawToQcow2(context.Background(), filepath.Join(dir.Path(), name), convertCompress, func(pct float64) {
				log.Printf("Converting %s: %.1f%%", name, pct)
			})
			if err != nil {
				return err
			}
			log.Printf("Converted %s: %s -> %s (%.1f%% smaller)", name,
				humanize.Bytes(uint64(res.SizeBefore)), humanize.Bytes(uint64(res.SizeAfter)), res.ReductionPct)
			info, err := ops.ImageInfo(res.OutputFile)
			if err != nil {
				return err
			}
			log.Printf("Image %s: format %s, virtual size %s", res.OutputFile,
				info.Format, humanize.Bytes(uint64(info.VirtualSize)))
			if !convertKeepRaw {
				if err := dir.Remove(name); err != nil {
					log.Printf("Failed to remove %s: %s", name, err)
				}
			}
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertVMName, "vm", "", "name of the VM whose staged disks to convert (required)")
	convertCmd.Flags().BoolVar(&convertCompress, "compress", true, "compress the qcow2 image")
	convertCmd.Flags().BoolVar(&convertKeepRaw, "keep-raw", false, "keep the raw image after conversion")
	convertCmd.MarkFlagRequired("vm")
	rootCmd.AddCommand(convertCmd)
}
