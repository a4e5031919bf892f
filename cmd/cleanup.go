// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/harvester"
	"github.com/openmigrate/n2h-helper/pkg/config"
)

var cleanupVolume string

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove leftover conversion pods from the target cluster",
	Long: `cleanup deletes conversion pods left behind by interrupted imports.
Volumes are never removed implicitly; pass --volume to delete one
specific leftover volume.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		ctx := context.Background()

		client, err := harvester.NewHarvesterClient(cfg.Harvester)
		if err != nil {
			return err
		}
		defer client.Close()

		pods, err := client.ListPods(ctx, "app=n2h-import")
		if err != nil {
			return err
		}
		for _, pod := range pods {
			if err := client.DeletePod(ctx, pod.Name); err != nil {
				log.Printf("Failed to delete pod %s: %s", pod.Name, err)
				continue
			}
			log.Printf("Deleted conversion pod %s (phase %s)", pod.Name, pod.Status.Phase)
		}

		if cleanupVolume != "" {
			if err := client.DeletePVC(ctx, cleanupVolume); err != nil {
				return err
			}
			log.Printf("Deleted volume %s", cleanupVolume)
		}
		return nil
	},
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupVolume, "volume", "", "also delete this leftover volume")
	rootCmd.AddCommand(cleanupCmd)
}
