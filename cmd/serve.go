// Copyright © 2024 The n2h-helper authors

package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/staging"
)

var (
	serveFile string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose one staged image over HTTP for manual imports",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := staging.DefaultFileServer().Serve(serveFile, "", servePort)
		if err != nil {
			return err
		}
		log.Printf("Serving %s, interrupt to stop", url)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		staging.DefaultFileServer().Stop()
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFile, "file", "", "path of the file to serve (required)")
	serveCmd.Flags().IntVar(&servePort, "port", constants.DefaultHTTPServerPort, "port to serve on")
	serveCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(serveCmd)
}
