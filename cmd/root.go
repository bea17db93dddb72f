package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "wifiviz/internal/config"
)

var (
	// Global flags
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Options
)

var rootCmd = &cobra.Command{
	Use:   "wifiviz",
	Short: "wifiviz: per-room views of wireless signal-strength data",
	Long: `wifiviz reads the Wireless Indoor Localization dataset (seven signal
channels plus a room label, tab-separated) and renders per-room derived
artifacts: pairwise correlation matrices as a color-coded HTML document,
and per-channel value distributions as histogram images.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.wifiviz/config.yaml)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// currentConfig returns the loaded configuration, loading defaults on demand
// when loadConfig could not run (e.g. direct invocation from tests).
func currentConfig() (cfgpkg.Options, error) {
	if cfg != nil {
		return *cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return cfgpkg.Options{}, err
	}
	return *c, nil
}
