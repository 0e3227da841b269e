package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`
	Rules  string `yaml:"rules" json:"rules"`
	HTML   string `yaml:"html" json:"html"`
	// Normalize is a pointer so an explicit false can be told from unset.
	Normalize *bool `yaml:"normalize" json:"normalize"`
	Verbose   bool  `yaml:"verbose" json:"verbose"`

	PDF struct {
		Font string `yaml:"font" json:"font"`
	} `yaml:"pdf" json:"pdf"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc into cfg for any fields that are
// still unset in cfg, so explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	const inputDefault = "-"

	if (cfg.InputPath == "" || cfg.InputPath == inputDefault) && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.RulesPath == "" && fc.Rules != "" {
		cfg.RulesPath = fc.Rules
	}
	if cfg.HTMLMode == "" && fc.HTML != "" {
		cfg.HTMLMode = fc.HTML
	}
	if !cfg.DisableNormalize && fc.Normalize != nil && !*fc.Normalize {
		cfg.DisableNormalize = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if cfg.PDFFontPath == "" && fc.PDF.Font != "" {
		cfg.PDFFontPath = fc.PDF.Font
	}
}

// ValidateConfig checks settings that would otherwise fail late.
func ValidateConfig(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.HTMLMode)) {
	case "", HTMLAuto, HTMLOn, HTMLOff:
	default:
		return fmt.Errorf("config: html must be auto, on or off (got %q)", cfg.HTMLMode)
	}
	if outputFormat(cfg.OutputPath) == formatPDF && strings.TrimSpace(cfg.PDFFontPath) == "" {
		return errors.New("config: pdf.font is required for .pdf output (or set ORDEREXTRACT_PDF_FONT)")
	}
	return nil
}
