package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/quadplan/pkg/alloc"
	"tableflip.dev/quadplan/pkg/task"
)

const (
	DefaultPath        = "~/.quadplan"
	DefaultHoursPerDay = 8.0
)

type Config interface {
	BasePath() string
	HoursPerDay() float64
	Order() string
}

// LoadConfig reads .quadplan.yaml from $QUADPLAN_CONFIG_PATH or the working
// directory. Any key can be overridden with a QUADPLAN_ prefixed variable.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("hours_per_day", DefaultHoursPerDay)
	v.SetDefault("order", alloc.OrderInsertion)
	v.SetConfigName(".quadplan") // .yaml is implicit
	v.SetEnvPrefix("QUADPLAN")
	v.AutomaticEnv()

	if override := os.Getenv("QUADPLAN_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	cfg := &fileConfig{
		Path:    path,
		Hours:   v.GetFloat64("hours_per_day"),
		OrderBy: v.GetString("order"),
	}
	if err := task.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("store: config: %w", err)
	}
	return cfg, nil
}

type fileConfig struct {
	Path    string  `json:"path" validate:"required"`
	Hours   float64 `json:"hours_per_day" validate:"gt=0,lte=24,halfhours"`
	OrderBy string  `json:"order" validate:"oneof=insertion earliest-due"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) HoursPerDay() float64 {
	return f.Hours
}

func (f *fileConfig) Order() string {
	return f.OrderBy
}
