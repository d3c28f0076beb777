// Package main provides the entry point for the Vaga Certa career agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Vaga Certa career materials service",
	Long:  "Vaga Certa extracts job postings from URLs and generates personalized career materials (optimized CV, cover letter, networking message, interview tips) via REST API or CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
