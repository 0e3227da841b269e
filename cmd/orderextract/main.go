package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/orderextract/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath   string
		outputPath  string
		configPath  string
		rulesPath   string
		htmlMode    string
		pdfFont     string
		envFiles    string
		normalize   bool
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&inputPath, "input", "-", "Path to the pasted order text; - reads stdin")
	flag.StringVar(&outputPath, "output", "", "Output path; .json, .pdf and .xlsx select a renderer, empty prints the summary")
	flag.StringVar(&configPath, "config", os.Getenv("ORDEREXTRACT_CONFIG"), "Optional YAML/JSON config file")
	flag.StringVar(&rulesPath, "rules", "", "Optional YAML/JSON rule table overlaid on the built-in rules")
	flag.StringVar(&htmlMode, "html", app.HTMLAuto, "HTML clipboard handling: auto, on or off")
	flag.StringVar(&pdfFont, "pdf.font", "", "TTF font with Hangul glyphs for .pdf output")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load before reading env defaults")
	flag.BoolVar(&normalize, "normalize", true, "Normalize input text before extraction")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		log.Error().Err(err).Msg("load env files")
		os.Exit(1)
	}

	cfg := app.Config{
		InputPath:        inputPath,
		OutputPath:       outputPath,
		RulesPath:        rulesPath,
		HTMLMode:         htmlMode,
		PDFFontPath:      pdfFont,
		DisableNormalize: !normalize,
		Verbose:          verbose,
	}
	if err := buildConfig(&cfg, configPath, explicitFlags()); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(cfg); err != nil {
		if errors.Is(err, app.ErrNothingExtracted) {
			log.Error().Err(err).Msg("run failed")
			os.Exit(2)
		}
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// buildConfig layers env defaults and the optional config file under the
// flag values, then validates the result. explicit names the flags given on
// the command line; flags left at their defaults yield to env and file.
func buildConfig(cfg *app.Config, configPath string, explicit map[string]bool) error {
	flagged := *cfg
	if !explicit["input"] && cfg.InputPath == "-" {
		cfg.InputPath = ""
	}
	if !explicit["html"] && cfg.HTMLMode == app.HTMLAuto {
		cfg.HTMLMode = ""
	}

	app.ApplyEnvToConfig(cfg)
	if p := strings.TrimSpace(configPath); p != "" {
		fc, err := app.LoadConfigFile(p)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(cfg, fc)
	}

	// Bool flags only move cfg one way, so restore explicit ones last.
	if explicit["normalize"] {
		cfg.DisableNormalize = flagged.DisableNormalize
	}
	if explicit["v"] {
		cfg.Verbose = flagged.Verbose
	}
	if cfg.InputPath == "" {
		cfg.InputPath = "-"
	}
	if cfg.HTMLMode == "" {
		cfg.HTMLMode = app.HTMLAuto
	}
	return app.ValidateConfig(*cfg)
}

// explicitFlags records which flags were set on the command line.
func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
