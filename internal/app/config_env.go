package app

import (
	"os"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from ORDEREXTRACT_*
// environment variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, envKey string) {
		if strings.TrimSpace(*dst) != "" {
			return
		}
		*dst = strings.TrimSpace(os.Getenv(envKey))
	}
	setString(&cfg.InputPath, "ORDEREXTRACT_INPUT")
	setString(&cfg.OutputPath, "ORDEREXTRACT_OUTPUT")
	setString(&cfg.RulesPath, "ORDEREXTRACT_RULES")
	setString(&cfg.HTMLMode, "ORDEREXTRACT_HTML")
	setString(&cfg.PDFFontPath, "ORDEREXTRACT_PDF_FONT")

	if !cfg.DisableNormalize {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("ORDEREXTRACT_NORMALIZE"))) {
		case "0", "false", "no", "off":
			cfg.DisableNormalize = true
		}
	}
	if !cfg.Verbose {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("ORDEREXTRACT_VERBOSE"))) {
		case "1", "true", "yes", "on":
			cfg.Verbose = true
		}
	}
}
