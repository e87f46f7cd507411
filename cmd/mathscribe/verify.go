package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awerner3/mathscribe/internal/raster"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <homework.pdf>",
	Short: "Rasterize one page to check scan quality",
	Long: `Verify rasterizes a single page of the PDF to a JPEG so you can eyeball
what the vision model will actually see before spending API calls on a
full transcription.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read pdf: %w", err)
		}

		page, _ := cmd.Flags().GetInt("page")
		dpi, _ := cmd.Flags().GetInt("dpi")
		pdftoppm, _ := cmd.Flags().GetString("pdftoppm")

		n, err := raster.PageCount(data)
		if err != nil {
			return fmt.Errorf("invalid pdf: %w", err)
		}
		if page < 1 || page > n {
			return fmt.Errorf("page %d out of range (document has %d pages)", page, n)
		}

		img, err := raster.RasterizePage(cmd.Context(), data, page, raster.Options{
			DPI:          dpi,
			PdftoppmPath: pdftoppm,
		})
		if err != nil {
			return fmt.Errorf("rasterize page %d: %w", page, err)
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			out = fmt.Sprintf("%s-page%d.jpg", stem, page)
		}
		if err := os.WriteFile(out, img, 0o644); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", out, len(img))
		return nil
	},
}

func init() {
	verifyCmd.Flags().Int("page", 1, "page number to rasterize (1-based)")
	verifyCmd.Flags().Int("dpi", 150, "rasterization resolution")
	verifyCmd.Flags().String("pdftoppm", "pdftoppm", "path to the pdftoppm binary")
	verifyCmd.Flags().StringP("output", "o", "", "output JPEG path")

	rootCmd.AddCommand(verifyCmd)
}
