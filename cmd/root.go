// Package cmd implements the mcd2d CLI surface of SPEC_FULL.md §10: a
// single cobra command tree (unlike the teacher's split root.go/
// config.go pair) with persistent output flags, a project inspection
// command, a single-DID decode command, and a multi-project batch
// decode driver.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	outputFormat string

	// invocationID stamps every command run with a correlation id,
	// included in error output the same way the teacher stamps
	// container/volume identity with google/uuid.
	invocationID uuid.UUID
)

var rootCmd = &cobra.Command{
	Use:   "mcd2d",
	Short: "MCD/ODX-2D diagnostic database decoder",
	Long: `mcd2d reads MCD-2D/ODX keyfile-pool diagnostic databases and
decodes ECU response payloads against the data object properties
(DOPs) a project describes.

Commands:
  project inspect   list a project's pools and object counts
  decode            decode one response payload for one DID
  batch decode       decode one DID across several project directories`,
	Version: "0.1.0-dev",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		invocationID = uuid.New()
	},
}

// Execute adds all child commands to the root command and runs it,
// including invocationID in any top-level error output.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", invocationID, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json)")
}

// GetVerbose returns the verbose flag value.
func GetVerbose() bool { return verbose }

// GetOutputFormat returns the output format flag value.
func GetOutputFormat() string { return outputFormat }

// InvocationID returns the correlation id stamped on the current
// command run.
func InvocationID() uuid.UUID { return invocationID }
