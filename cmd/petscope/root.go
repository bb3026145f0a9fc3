// Package main provides the PetScope terminal client.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "petscope",
	Short: "AI-assisted pet health checks",
	Long: `PetScope walks you through a short questionnaire about your pet
and asks an AI reasoning service for a ranked differential diagnosis
with veterinary detail for the most likely condition.

It is not veterinary advice.`,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
