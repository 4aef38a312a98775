// Package main provides the entry point for the SocialCopy HTTP API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "socialcopy_agent",
	Short: "SocialCopy content repurposing server",
	Long:  "SocialCopy turns long-form source content into platform-tailored social media copy with matching visuals, via REST API or the command line.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
