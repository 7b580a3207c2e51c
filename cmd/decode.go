package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nexusauto/mcd2d/internal/decode"
	"github.com/nexusauto/mcd2d/internal/project"
)

var (
	decodeProjectDir  string
	decodeBaseVariant string
	decodeEcuVariant  string
	decodeDID         string
	decodeResponse    string
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a response payload for one DID against a project's DOP data",
	RunE: func(cmd *cobra.Command, args []string) error {
		did, err := parseDID(decodeDID)
		if err != nil {
			return fmt.Errorf("parsing --did: %w", err)
		}

		payload, err := hex.DecodeString(decodeResponse)
		if err != nil {
			return fmt.Errorf("parsing --response as hex: %w", err)
		}

		p, err := project.Open(decodeProjectDir, nil)
		if err != nil {
			return fmt.Errorf("opening project %s: %w", decodeProjectDir, err)
		}
		defer p.Close()

		variant := decodeEcuVariant
		if variant == "" {
			variant = decodeBaseVariant
		}

		node, err := p.DescribeDID(variant, did)
		if err != nil {
			return fmt.Errorf("describing DID 0x%04X in %s: %w", did, variant, err)
		}

		out, err := decode.New().Decode(node, payload, 0)
		if err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return printDecoded(cmd, out)
	},
}

// parseDID accepts both decimal ("4660") and 0x-prefixed hex ("0x1234")
// DID literals, matching how operators usually quote a DID from a
// tool's own diagnostic trace.
func parseDID(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// printDecoded writes out in the --output format requested on the root
// command: "json" pretty-prints the decoded tree, anything else falls
// back to its default Go representation, good enough for quick manual
// inspection.
func printDecoded(cmd *cobra.Command, out any) error {
	switch GetOutputFormat() {
	case "json":
		return printJSON(cmd, out)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", out)
		return nil
	}
}

func init() {
	decodeCmd.Flags().StringVar(&decodeProjectDir, "project", "", "project directory")
	decodeCmd.Flags().StringVar(&decodeBaseVariant, "base-variant", "", "base variant pool name")
	decodeCmd.Flags().StringVar(&decodeEcuVariant, "ecu-variant", "", "ECU variant pool name (overrides --base-variant)")
	decodeCmd.Flags().StringVar(&decodeDID, "did", "", "data identifier, decimal or 0x-hex")
	decodeCmd.Flags().StringVar(&decodeResponse, "response", "", "response payload, hex encoded")

	decodeCmd.MarkFlagRequired("project")
	decodeCmd.MarkFlagRequired("did")
	decodeCmd.MarkFlagRequired("response")

	rootCmd.AddCommand(decodeCmd)
}
