// Package main provides the ats-resume command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats-resume",
	Short: "Scan resumes against job descriptions",
	Long:  "ats-resume checks how well a resume matches a job description, scores the match the way an applicant tracking system would, and produces an optimized rewrite that works the missing keywords in.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
