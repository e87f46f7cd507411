// Package main is the entry point for the mathscribe CLI, the one-shot
// counterpart to the HTTP service: transcribe a scanned homework PDF,
// parse a transcript into an outline, render it to LaTeX, or rasterize
// a page to check scan quality.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mathscribe",
	Short: "Transcribe handwritten math homework into LaTeX",
	Long: `mathscribe converts scanned handwritten math homework into typeset
documents. A vision model transcribes each page into structured
markdown, the transcript is parsed into a problem/part/subpart outline,
and the outline is rendered to LaTeX and compiled with tectonic.

Each pipeline stage is a subcommand: transcribe, parse, render, and
verify. The transcribe subcommand runs the whole chain end to end.`,
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("MATHSCRIBE")
	viper.AutomaticEnv()

	// The Mistral key is commonly set without the app prefix.
	viper.BindEnv("mistral_api_key", "MATHSCRIBE_MISTRAL_API_KEY", "MISTRAL_API_KEY")
	viper.SetDefault("mistral_model", "pixtral-12b-2409")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
