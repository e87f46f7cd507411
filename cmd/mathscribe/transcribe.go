package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/awerner3/mathscribe/internal/outline"
	"github.com/awerner3/mathscribe/internal/raster"
	"github.com/awerner3/mathscribe/internal/render"
	"github.com/awerner3/mathscribe/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <homework.pdf>",
	Short: "Transcribe a scanned homework PDF end to end",
	Long: `Transcribe runs the full pipeline on one PDF: rasterize every page,
transcribe each with the vision model, assemble the outline, render
LaTeX, and compile the typeset PDF. Intermediate artifacts land next
to the input unless --output-dir says otherwise.

Requires MISTRAL_API_KEY in the environment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := viper.GetString("mistral_api_key")
		if apiKey == "" {
			return fmt.Errorf("MISTRAL_API_KEY is required")
		}

		input := args[0]
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read pdf: %w", err)
		}

		outDir, _ := cmd.Flags().GetString("output-dir")
		if outDir == "" {
			outDir = filepath.Dir(input)
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

		dpi, _ := cmd.Flags().GetInt("dpi")
		pdftoppm, _ := cmd.Flags().GetString("pdftoppm")

		n, err := raster.PageCount(data)
		if err != nil {
			return fmt.Errorf("invalid pdf: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Rasterizing %d pages at %d dpi...\n", n, dpi)
		pages, err := raster.Rasterize(cmd.Context(), data, raster.Options{
			DPI:          dpi,
			PdftoppmPath: pdftoppm,
		})
		if err != nil {
			return fmt.Errorf("rasterize: %w", err)
		}

		client := transcribe.NewClient(apiKey, viper.GetString("mistral_model"))
		defer client.Close()

		texts := make([]string, len(pages))
		for i, img := range pages {
			fmt.Fprintf(os.Stderr, "Transcribing page %d/%d...\n", i+1, len(pages))
			text, err := client.TranscribePage(cmd.Context(), img)
			if err != nil {
				return fmt.Errorf("transcribe page %d: %w", i+1, err)
			}
			texts[i] = text
		}
		transcript := strings.Join(texts, "\n\n")

		transcriptPath := filepath.Join(outDir, stem+".md")
		if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", transcriptPath)

		doc := outline.Assemble(transcript)
		fmt.Fprintf(os.Stderr, "Recognized %d problems\n", len(doc.Problems))

		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		tex, err := render.RenderTeX(render.NormalizeDocument(doc), render.Options{
			Title:  title,
			Author: author,
		})
		if err != nil {
			return fmt.Errorf("render latex: %w", err)
		}
		texPath := filepath.Join(outDir, stem+".tex")
		if err := os.WriteFile(texPath, []byte(tex), 0o644); err != nil {
			return fmt.Errorf("write latex: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", texPath)

		if texOnly, _ := cmd.Flags().GetBool("tex-only"); texOnly {
			return nil
		}

		tectonic, _ := cmd.Flags().GetString("tectonic")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		pdfPath, err := render.NewCompiler(tectonic, timeout).Compile(cmd.Context(), texPath)
		if err != nil {
			return fmt.Errorf("compile: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", pdfPath)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().String("output-dir", "", "directory for artifacts (default: alongside input)")
	transcribeCmd.Flags().String("title", "", "document title")
	transcribeCmd.Flags().String("author", "", "document author")
	transcribeCmd.Flags().Int("dpi", 300, "rasterization resolution")
	transcribeCmd.Flags().String("pdftoppm", "pdftoppm", "path to the pdftoppm binary")
	transcribeCmd.Flags().Bool("tex-only", false, "skip PDF compilation")
	transcribeCmd.Flags().String("tectonic", "tectonic", "path to the tectonic binary")
	transcribeCmd.Flags().Duration("timeout", 2*time.Minute, "compile timeout")

	rootCmd.AddCommand(transcribeCmd)
}
