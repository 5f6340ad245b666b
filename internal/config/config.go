// Package config reads and writes the hours configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/wwlorey/hours/internal/calendar"
	"github.com/wwlorey/hours/internal/ledger"
)

const (
	EnvConfigDir = "HOURS_CONFIG_DIR"
	EnvDataDir   = "HOURS_DATA_DIR"
	EnvNoGit     = "HOURS_NO_GIT"

	FileName = "config.toml"
)

// Licensure defaults written by init.
const (
	DefaultTotalHoursTarget  = 3000
	DefaultDirectHoursTarget = 1200
	DefaultMinMonths         = 24
	DefaultMinWeeklyAverage  = 15.0
	DefaultRemote            = "origin"
)

// Config is the content of config.toml.
type Config struct {
	Data      DataConfig      `toml:"data" mapstructure:"data"`
	Git       GitConfig       `toml:"git" mapstructure:"git"`
	Licensure LicensureConfig `toml:"licensure" mapstructure:"licensure"`
}

type DataConfig struct {
	Directory string `toml:"directory" mapstructure:"directory" validate:"required"`
}

type GitConfig struct {
	Remote   string `toml:"remote" mapstructure:"remote" validate:"required"`
	AutoPush bool   `toml:"auto_push" mapstructure:"auto_push"`
}

// LicensureConfig holds the progress targets shown by summary and export.
type LicensureConfig struct {
	StartDate         string  `toml:"start_date" mapstructure:"start_date" validate:"required"`
	TotalHoursTarget  int     `toml:"total_hours_target" mapstructure:"total_hours_target" validate:"gt=0"`
	DirectHoursTarget int     `toml:"direct_hours_target" mapstructure:"direct_hours_target" validate:"gte=0"`
	MinMonths         int     `toml:"min_months" mapstructure:"min_months" validate:"gt=0"`
	MinWeeklyAverage  float64 `toml:"min_weekly_average" mapstructure:"min_weekly_average" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration written by a fresh init.
func Default(dataDir, remote string, start civil.Date) *Config {
	autoPush := remote != ""
	return &Config{
		Data: DataConfig{Directory: dataDir},
		Git:  GitConfig{Remote: DefaultRemote, AutoPush: autoPush},
		Licensure: LicensureConfig{
			StartDate:         start.String(),
			TotalHoursTarget:  DefaultTotalHoursTarget,
			DirectHoursTarget: DefaultDirectHoursTarget,
			MinMonths:         DefaultMinMonths,
			MinWeeklyAverage:  DefaultMinWeeklyAverage,
		},
	}
}

// Dir returns $HOURS_CONFIG_DIR, or the hours directory under the user config dir.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, "hours"), nil
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the config file at path. HOURS_DATA_DIR overrides data.directory.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("configuration not found at %s. Run 'hours init' to set up: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.BindEnv("data.directory", EnvDataDir); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks required fields and the licensure start date.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid field(s): %s", strings.Join(fields, ", "))
		}
		return err
	}
	_, err := c.StartDate()
	return err
}

// StartDate parses licensure.start_date, which must be a week start.
func (c *Config) StartDate() (civil.Date, error) {
	d, err := calendar.ParseDate(c.Licensure.StartDate)
	if err != nil {
		return civil.Date{}, fmt.Errorf("licensure.start_date: %w", err)
	}
	if !calendar.IsWeekStart(d) {
		return civil.Date{}, fmt.Errorf("licensure.start_date: %w, got %s", ledger.ErrInvalidWeekStart, d)
	}
	return d, nil
}

// DataDir returns data.directory with a leading ~ expanded.
func (c *Config) DataDir() string {
	return ExpandHome(c.Data.Directory)
}

// DataFile returns the ledger path.
func (c *Config) DataFile() string {
	return filepath.Join(c.DataDir(), ledger.FileName)
}

// Save writes the config as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// NoGitFromEnv reports whether HOURS_NO_GIT=1 is set.
func NoGitFromEnv() bool {
	return os.Getenv(EnvNoGit) == "1"
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
