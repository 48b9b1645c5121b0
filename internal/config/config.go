package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"gridsel/internal/logging"
)

// DefaultConfigFile is looked up in the working directory when no path is given
const DefaultConfigFile = ".gridsel.toml"

// Settings represents the application configuration
type Settings struct {
	Log  logging.Config `mapstructure:"log"`
	Host HostSettings   `mapstructure:"host"`
	UI   UISettings     `mapstructure:"ui"`
}

// HostSettings configures the selection store
type HostSettings struct {
	// Version overrides the version the store reports; empty keeps the built-in one
	Version string `mapstructure:"version"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowLegend  bool `mapstructure:"show_legend"`
	CellWidth   int  `mapstructure:"cell_width"`
	PrintOnExit bool `mapstructure:"print_on_exit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "gridsel.log")
	v.SetDefault("host.version", "")
	v.SetDefault("ui.show_legend", true)
	v.SetDefault("ui.cell_width", 8)
	v.SetDefault("ui.print_on_exit", false)
}

// LoadSettings reads settings from defaults, the TOML file at path and
// GRIDSEL_* environment variables, in increasing priority. An empty path
// looks for DefaultConfigFile in the working directory; a missing default
// file is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("gridsel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, ".toml"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if s.UI.CellWidth < 3 {
		s.UI.CellWidth = 3
	}
	return &s, nil
}
