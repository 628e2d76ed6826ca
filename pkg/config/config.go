// Package config loads depotstat settings from YAML files, DEPOTSTAT_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/depotstat/pkg/inventory"
	"github.com/Sumatoshi-tech/depotstat/pkg/observability"
	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
	"github.com/Sumatoshi-tech/depotstat/pkg/questnode"
	"github.com/Sumatoshi-tech/depotstat/pkg/scene"
)

// Sentinel validation errors.
var (
	ErrInvalidThreshold = errors.New("threshold must be positive")
	ErrInvalidTop       = errors.New("top must not be negative")
	ErrInvalidGroupBy   = errors.New("invalid scene grouping")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidTheme     = errors.New("invalid output theme")
	ErrEmptySuffix      = errors.New("file suffix must not be empty")
)

// EnvPrefix prefixes every environment override, e.g. DEPOTSTAT_QUESTS_THRESHOLD.
const EnvPrefix = "DEPOTSTAT"

const configName = "depotstat"

// Config holds every depotstat setting.
type Config struct {
	Scenes  ScenesConfig  `mapstructure:"scenes"`
	Quests  QuestsConfig  `mapstructure:"quests"`
	Folders FoldersConfig `mapstructure:"folders"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Anims   AnimsConfig   `mapstructure:"anims"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ScenesConfig configures the scenes command.
type ScenesConfig struct {
	Suffix      string   `mapstructure:"suffix"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
	Top         int      `mapstructure:"top"`
	GroupBy     string   `mapstructure:"group_by"`
	Threshold   int      `mapstructure:"threshold"`
}

// QuestsConfig configures the quests command.
type QuestsConfig struct {
	TargetPrefixes []string `mapstructure:"target_prefixes"`
	Threshold      int      `mapstructure:"threshold"`
	Separator      string   `mapstructure:"separator"`
}

// FoldersConfig configures quest-folder discovery and file counts.
type FoldersConfig struct {
	Suffixes   []string             `mapstructure:"suffixes"`
	Categories []inventory.Category `mapstructure:"categories"`
}

// AssetsConfig configures the assets command.
type AssetsConfig struct {
	Types []inventory.AssetType `mapstructure:"types"`
	Top   int                   `mapstructure:"top"`
}

// AnimsConfig configures the anims command.
type AnimsConfig struct {
	Suffix     string                   `mapstructure:"suffix"`
	Categories []inventory.AnimCategory `mapstructure:"categories"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Theme   string `mapstructure:"theme"`
	MaxRows int    `mapstructure:"max_rows"`
}

// LoadConfig reads configPath, or depotstat.yaml from the usual locations
// when configPath is empty, then applies environment overrides and
// defaults. A missing default config file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")

		if home, err := os.UserHomeDir(); err == nil {
			viperCfg.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	return decode(viperCfg)
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	cfg, err := decode(viperCfg)
	if err != nil {
		// Built-in defaults always validate.
		panic(err)
	}

	return cfg
}

func decode(viperCfg *viper.Viper) (*Config, error) {
	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	applyListDefaults(&config)

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the
// process environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Scene defaults.
	viperCfg.SetDefault("scenes.suffix", DefaultScenesSuffix)
	viperCfg.SetDefault("scenes.exclude_dirs", scene.DefaultExcludeDirs)
	viperCfg.SetDefault("scenes.top", DefaultScenesTop)
	viperCfg.SetDefault("scenes.group_by", DefaultScenesGroupBy)
	viperCfg.SetDefault("scenes.threshold", DefaultScenesThreshold)

	// Quest-node defaults.
	viperCfg.SetDefault("quests.target_prefixes", questnode.DefaultTargetPrefixes)
	viperCfg.SetDefault("quests.threshold", DefaultQuestsThreshold)
	viperCfg.SetDefault("quests.separator", DefaultQuestsSeparator)

	// Inventory defaults.
	viperCfg.SetDefault("folders.suffixes", inventory.DefaultQuestSuffixes)
	viperCfg.SetDefault("assets.top", DefaultAssetsTop)
	viperCfg.SetDefault("anims.suffix", DefaultAnimsSuffix)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Output defaults.
	viperCfg.SetDefault("output.theme", DefaultTheme)
	viperCfg.SetDefault("output.max_rows", DefaultMaxRows)
}

// applyListDefaults fills structured lists, which viper cannot default
// from environment variables.
func applyListDefaults(config *Config) {
	if len(config.Folders.Categories) == 0 {
		config.Folders.Categories = inventory.DefaultCategories()
	}

	if len(config.Assets.Types) == 0 {
		config.Assets.Types = inventory.DefaultAssetTypes()
	}

	if len(config.Anims.Categories) == 0 {
		config.Anims.Categories = inventory.DefaultAnimCategories()
	}
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Scenes.Suffix) == "" {
		return fmt.Errorf("%w: scenes.suffix", ErrEmptySuffix)
	}

	if strings.TrimSpace(config.Anims.Suffix) == "" {
		return fmt.Errorf("%w: anims.suffix", ErrEmptySuffix)
	}

	if slices.ContainsFunc(config.Folders.Suffixes, isBlank) {
		return fmt.Errorf("%w: folders.suffixes", ErrEmptySuffix)
	}

	for _, t := range config.Assets.Types {
		if slices.ContainsFunc(t.Extensions, isBlank) {
			return fmt.Errorf("%w: assets type %q", ErrEmptySuffix, t.Name)
		}
	}

	if config.Scenes.Top < 0 {
		return fmt.Errorf("%w: scenes.top %d", ErrInvalidTop, config.Scenes.Top)
	}

	if config.Assets.Top < 0 {
		return fmt.Errorf("%w: assets.top %d", ErrInvalidTop, config.Assets.Top)
	}

	if config.Output.MaxRows < 0 {
		return fmt.Errorf("%w: output.max_rows %d", ErrInvalidTop, config.Output.MaxRows)
	}

	if config.Scenes.Threshold <= 0 {
		return fmt.Errorf("%w: scenes.threshold %d", ErrInvalidThreshold, config.Scenes.Threshold)
	}

	if config.Quests.Threshold <= 0 {
		return fmt.Errorf("%w: quests.threshold %d", ErrInvalidThreshold, config.Quests.Threshold)
	}

	if _, err := scene.ParseGroupBy(config.Scenes.GroupBy); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidGroupBy, config.Scenes.GroupBy)
	}

	if _, err := observability.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	switch strings.ToLower(config.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if _, err := plotpage.ParseTheme(config.Output.Theme); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Output.Theme)
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
