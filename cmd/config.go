package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"wifiviz/internal/colorscale"
	cfgpkg "wifiviz/internal/config"
	"wifiviz/internal/report"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set wifiviz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := currentConfig()
		if err != nil {
			return err
		}
		fmt.Printf("data_file: %s\n", opt.DataFile)
		fmt.Printf("result_file: %s\n", opt.ResultFile)
		fmt.Printf("colormap: %s\n", opt.Colormap)
		fmt.Printf("precision: %d\n", opt.Precision)
		fmt.Printf("absolute: %t\n", opt.Absolute)
		fmt.Printf("title: %s\n", opt.Title)
		fmt.Printf("image_dir: %s\n", opt.ImageDir)
		fmt.Printf("image_stem: %s\n", opt.ImageStem)
		fmt.Printf("bins: %d\n", opt.Bins)
		if opt.Archive != "" {
			fmt.Printf("archive: %s\n", opt.Archive)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigKey(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Saved config")
		return nil
	},
}

// setConfigKey applies one key/value pair, validating values that have a
// constrained domain before anything is saved.
func setConfigKey(c *cfgpkg.Options, key, val string) error {
	switch key {
	case "data_file":
		c.DataFile = val
	case "result_file":
		c.ResultFile = val
	case "colormap":
		if _, err := colorscale.Lookup(val); err != nil {
			return err
		}
		c.Colormap = val
	case "precision":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for precision: %v", val)
		}
		if err := report.ValidatePrecision(i); err != nil {
			return err
		}
		c.Precision = i
	case "absolute":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for absolute: %v", val)
		}
		c.Absolute = b
	case "title":
		c.Title = val
	case "image_dir":
		c.ImageDir = val
	case "image_stem":
		c.ImageStem = val
	case "bins":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid bins: %v (must be a positive int)", val)
		}
		c.Bins = i
	case "archive":
		c.Archive = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
