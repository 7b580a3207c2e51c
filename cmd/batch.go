package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/nexusauto/mcd2d/internal/decode"
	"github.com/nexusauto/mcd2d/internal/project"
)

var (
	batchRoot       string
	batchEcuVariant string
	batchDID        string
	batchResponse   string
	batchMaxWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run mcd2d operations across several project directories",
}

var batchDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode one DID/response pair against every project under --root",
	RunE: func(cmd *cobra.Command, args []string) error {
		did, err := parseDID(batchDID)
		if err != nil {
			return fmt.Errorf("parsing --did: %w", err)
		}
		payload, err := hex.DecodeString(batchResponse)
		if err != nil {
			return fmt.Errorf("parsing --response as hex: %w", err)
		}

		projects, err := listProjectDirs(batchRoot)
		if err != nil {
			return fmt.Errorf("listing project directories under %s: %w", batchRoot, err)
		}

		results := make([]batchResult, len(projects))
		p := pool.New().WithMaxGoroutines(batchMaxWorkers).WithErrors()
		for i, dir := range projects {
			i, dir := i, dir
			p.Go(func() error {
				r, err := decodeOneProject(dir, batchEcuVariant, did, payload)
				results[i] = r
				return err
			})
		}

		// p.Wait collects every per-project error; individual failures
		// are still surfaced per-project in results, so a non-nil error
		// here just means at least one project failed.
		waitErr := p.Wait()

		for _, r := range results {
			if r.err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: error: %v\n", r.project, r.err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %+v\n", r.project, r.decoded)
		}

		if waitErr != nil {
			return fmt.Errorf("%d of %d projects failed", countErrors(results), len(results))
		}
		return nil
	},
}

type batchResult struct {
	project string
	decoded any
	err     error
}

func decodeOneProject(dir, ecuVariant string, did uint16, payload []byte) (batchResult, error) {
	r := batchResult{project: dir}

	p, err := project.Open(dir, nil)
	if err != nil {
		r.err = fmt.Errorf("opening project: %w", err)
		return r, r.err
	}
	defer p.Close()

	node, err := p.DescribeDID(ecuVariant, did)
	if err != nil {
		r.err = fmt.Errorf("describing DID: %w", err)
		return r, r.err
	}

	out, err := decode.New().Decode(node, payload, 0)
	if err != nil {
		r.err = fmt.Errorf("decoding response: %w", err)
		return r, r.err
	}

	r.decoded = out
	return r, nil
}

func countErrors(results []batchResult) int {
	n := 0
	for _, r := range results {
		if r.err != nil {
			n++
		}
	}
	return n
}

// listProjectDirs returns every immediate subdirectory of root, each
// treated as one independent project directory.
func listProjectDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}

func init() {
	batchDecodeCmd.Flags().StringVar(&batchRoot, "root", "", "directory containing project subdirectories")
	batchDecodeCmd.Flags().StringVar(&batchEcuVariant, "ecu-variant", "", "ECU variant pool name, shared by every project")
	batchDecodeCmd.Flags().StringVar(&batchDID, "did", "", "data identifier, decimal or 0x-hex")
	batchDecodeCmd.Flags().StringVar(&batchResponse, "response", "", "response payload, hex encoded")
	batchDecodeCmd.Flags().IntVar(&batchMaxWorkers, "max-workers", 8, "maximum concurrent project decodes")

	batchDecodeCmd.MarkFlagRequired("root")
	batchDecodeCmd.MarkFlagRequired("ecu-variant")
	batchDecodeCmd.MarkFlagRequired("did")
	batchDecodeCmd.MarkFlagRequired("response")

	batchCmd.AddCommand(batchDecodeCmd)
	rootCmd.AddCommand(batchCmd)
}
