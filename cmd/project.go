package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusauto/mcd2d/internal/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect a project directory",
}

var projectInspectCmd = &cobra.Command{
	Use:   "inspect <project-dir>",
	Short: "List a project's pools and their record counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		p, err := project.Open(dir, nil)
		if err != nil {
			return fmt.Errorf("opening project %s: %w", dir, err)
		}
		defer p.Close()

		pools, err := listPoolNames(dir)
		if err != nil {
			return fmt.Errorf("listing pools in %s: %w", dir, err)
		}

		for _, name := range pools {
			pm, err := p.Pool(name)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: error: %v\n", name, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records\n", name, len(pm.Records()))
		}
		return nil
	},
}

// listPoolNames scans dir for .key files and returns the pool base
// names (without the .key suffix) they belong to, matching the
// "<base>.key"/"<base>.db" pairing pool.Open expects.
func listPoolNames(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if strings.HasSuffix(f.Name(), ".key") {
			names = append(names, strings.TrimSuffix(f.Name(), ".key"))
		}
	}
	sort.Strings(names)
	return names, nil
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectInspectCmd)
}
