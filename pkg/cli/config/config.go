package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/pipehq/workboard/pkg/domain/model/config"
	"github.com/pipehq/workboard/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration loaded from a TOML file
type AppConfig struct {
	SLA  SLASection  `toml:"sla"`
	Edit EditSection `toml:"edit"`

	path string
}

// SLASection configures the stage SLA thresholds driving sla_breach
type SLASection struct {
	DefaultDays int        `toml:"default_days"`
	Stages      []SLAStage `toml:"stage"`
}

// SLAStage overrides the threshold for one stage of an entity type
type SLAStage struct {
	EntityType string `toml:"entity_type"`
	Stage      string `toml:"stage"`
	Days       int    `toml:"days"`
}

// Validate checks if the SLAStage is valid
func (s *SLAStage) Validate() error {
	if _, err := types.ParseEntityType(s.EntityType); err != nil {
		return goerr.Wrap(err, "invalid SLA entity type")
	}
	if s.Stage == "" {
		return goerr.New("SLA stage name is required")
	}
	if s.Days < 1 {
		return goerr.New("SLA days must be positive", goerr.V("stage", s.Stage), goerr.V("days", s.Days))
	}
	return nil
}

// EditSection configures the inline-edit allow-list
type EditSection struct {
	Fields []string `toml:"fields"`
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.SLA.DefaultDays < 0 {
		return goerr.New("sla default_days must not be negative", goerr.V("default_days", a.SLA.DefaultDays))
	}

	seen := make(map[string]bool, len(a.SLA.Stages))
	for i := range a.SLA.Stages {
		stage := &a.SLA.Stages[i]
		if err := stage.Validate(); err != nil {
			return goerr.Wrap(err, "invalid SLA stage", goerr.V("index", i))
		}
		key := stage.EntityType + "/" + stage.Stage
		if seen[key] {
			return goerr.New("duplicate SLA stage", goerr.V("entity_type", stage.EntityType), goerr.V("stage", stage.Stage))
		}
		seen[key] = true
	}

	for _, field := range a.Edit.Fields {
		if field == "" {
			return goerr.New("editable field name must not be empty")
		}
	}
	return nil
}

// Flags returns CLI flags for app configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to workboard configuration TOML file",
			Sources:     cli.EnvVars("WORKBOARD_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the TOML file when a path was given and converts it to the
// domain configuration. Without a path the reference defaults apply.
func (a *AppConfig) Configure() (*domainConfig.WorkboardConfig, error) {
	if a.path == "" {
		return domainConfig.Default(), nil
	}

	loaded, err := LoadAppConfiguration(a.path)
	if err != nil {
		return nil, err
	}
	a.SLA = loaded.SLA
	a.Edit = loaded.Edit
	return a.ToDomainWorkboardConfig(), nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}

// ToDomainWorkboardConfig converts AppConfig to the domain WorkboardConfig.
// Omitted sections fall back to the reference defaults.
func (a *AppConfig) ToDomainWorkboardConfig() *domainConfig.WorkboardConfig {
	cfg := domainConfig.Default()

	if a.SLA.DefaultDays > 0 {
		cfg.SLA.DefaultDays = a.SLA.DefaultDays
	}
	for _, stage := range a.SLA.Stages {
		cfg.SLA.Stages = append(cfg.SLA.Stages, domainConfig.StageSLA{
			EntityType: types.EntityType(stage.EntityType),
			Stage:      stage.Stage,
			Days:       stage.Days,
		})
	}
	if len(a.Edit.Fields) > 0 {
		cfg.EditableFields = append([]string(nil), a.Edit.Fields...)
	}

	return cfg
}
