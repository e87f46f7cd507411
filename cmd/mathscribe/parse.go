package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/awerner3/mathscribe/internal/outline"
)

var parseCmd = &cobra.Command{
	Use:   "parse [transcript.md]",
	Short: "Parse a transcript into a problem outline",
	Long: `Parse reads a markdown transcript (from a file or stdin) and assembles
it into the problem/part/subpart outline, printed as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var transcript []byte
		var err error
		if len(args) == 1 {
			transcript, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}
		} else {
			transcript, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}

		doc := outline.Assemble(string(transcript))

		out, _ := cmd.Flags().GetString("output")
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal outline: %w", err)
		}
		data = append(data, '\n')

		if out == "" || out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write outline: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d problems)\n", out, len(doc.Problems))
		return nil
	},
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(parseCmd)
}
