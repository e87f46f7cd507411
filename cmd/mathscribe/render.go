package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/awerner3/mathscribe/internal/outline"
	"github.com/awerner3/mathscribe/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [transcript.md]",
	Short: "Render a transcript to LaTeX and compile it",
	Long: `Render assembles a transcript into the problem outline, renders it to
LaTeX, and compiles the result with tectonic. Pass --tex-only to skip
compilation and keep just the .tex source.`,
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
		if len(doc.Problems) == 0 {
			fmt.Fprintln(os.Stderr, "Warning: no problems recognized in transcript")
		}

		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		tex, err := render.RenderTeX(render.NormalizeDocument(doc), render.Options{
			Title:  title,
			Author: author,
		})
		if err != nil {
			return fmt.Errorf("render latex: %w", err)
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			if len(args) == 1 {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".tex"
			} else {
				out = "homework.tex"
			}
		}
		if err := os.WriteFile(out, []byte(tex), 0o644); err != nil {
			return fmt.Errorf("write latex: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)

		if texOnly, _ := cmd.Flags().GetBool("tex-only"); texOnly {
			return nil
		}

		tectonic, _ := cmd.Flags().GetString("tectonic")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		pdfPath, err := render.NewCompiler(tectonic, timeout).Compile(cmd.Context(), out)
		if err != nil {
			return fmt.Errorf("compile: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", pdfPath)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output .tex path (default: alongside input)")
	renderCmd.Flags().String("title", "", "document title")
	renderCmd.Flags().String("author", "", "document author")
	renderCmd.Flags().Bool("tex-only", false, "skip PDF compilation")
	renderCmd.Flags().String("tectonic", "tectonic", "path to the tectonic binary")
	renderCmd.Flags().Duration("timeout", 2*time.Minute, "compile timeout")

	rootCmd.AddCommand(renderCmd)
}
