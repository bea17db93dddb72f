package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Options is the recognized configuration surface for both pipelines.
type Options struct {
	// Correlation pipeline
	DataFile   string `mapstructure:"data_file" yaml:"data_file"`
	ResultFile string `mapstructure:"result_file" yaml:"result_file"`
	Colormap   string `mapstructure:"colormap" yaml:"colormap"`
	Precision  int    `mapstructure:"precision" yaml:"precision"`
	Absolute   bool   `mapstructure:"absolute" yaml:"absolute"`
	Title      string `mapstructure:"title" yaml:"title"`

	// Distribution pipeline
	ImageDir  string `mapstructure:"image_dir" yaml:"image_dir"`
	ImageStem string `mapstructure:"image_stem" yaml:"image_stem"`
	Bins      int    `mapstructure:"bins" yaml:"bins"`
	// Archive, when non-empty, packs images into one zip of that name
	// instead of loose files.
	Archive string `mapstructure:"archive" yaml:"archive"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.wifiviz/config.yaml, creating the directory if
// necessary.
func Save(o *Options, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".wifiviz")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix("WIFIVIZ")
	v.AutomaticEnv()

	v.SetDefault("data_file", "wifi_localization.txt")
	v.SetDefault("result_file", "correlations.html")
	v.SetDefault("colormap", "Greens")
	v.SetDefault("precision", 6)
	v.SetDefault("absolute", false)
	v.SetDefault("title", "Wi-fi signal strength correlation values.")
	v.SetDefault("image_dir", "images")
	v.SetDefault("image_stem", "room")
	v.SetDefault("bins", 20)
	v.SetDefault("archive", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".wifiviz"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var o Options
	if err := v.Unmarshal(&o); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &o, nil
}
