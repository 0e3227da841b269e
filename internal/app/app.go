package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/orderextract/internal/assemble"
	"github.com/hyperifyio/orderextract/internal/extract"
	"github.com/hyperifyio/orderextract/internal/normalize"
	"github.com/hyperifyio/orderextract/internal/order"
)

// ErrNothingExtracted is returned by Run when no field survived assembly.
// Per the exit code policy this maps to a non-zero process exit.
var ErrNothingExtracted = assemble.ErrNothingExtracted

type App struct {
	cfg       Config
	extractor extract.Extractor
	stdin     io.Reader
	stdout    io.Writer
}

// New builds the extraction pipeline described by cfg. Rule files are
// loaded and compiled here so a bad table fails before any input is read.
func New(cfg Config) (*App, error) {
	var rules *extract.Rules
	if strings.TrimSpace(cfg.RulesPath) != "" {
		rs, err := extract.LoadRules(cfg.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		rules, err = extract.Compile(rs)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("rules", cfg.RulesPath).Msg("loaded rule table")
	}
	opts := extract.DefaultOptions()
	opts.Normalize = !cfg.DisableNormalize
	return &App{
		cfg:       cfg,
		extractor: extract.New(rules, opts),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}, nil
}

// Run reads one pasted order block, extracts it and writes the result.
// Warnings are logged and never fail the run.
func (a *App) Run(ctx context.Context) error {
	logger := log.With().Str("run", uuid.NewString()).Logger()

	raw, err := a.readInput()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	text := a.prepareInput(raw)
	rec := a.extractor.Extract(text)

	for _, w := range rec.Warnings {
		logger.Warn().Str("warning", string(w)).Msg("extraction warning")
	}
	if err := a.writeOutput(rec); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if rec.Empty {
		logger.Warn().Int("bytes", len(raw)).Msg("no field could be extracted")
		return ErrNothingExtracted
	}
	logger.Info().
		Int("options", countPresent(rec.Options)).
		Int("warnings", len(rec.Warnings)).
		Str("out", displayPath(a.cfg.OutputPath)).
		Msg("extracted order")
	return nil
}

func (a *App) readInput() ([]byte, error) {
	p := strings.TrimSpace(a.cfg.InputPath)
	if p == "" || p == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(p)
}

// prepareInput flattens HTML clipboard payloads to text according to the
// configured mode.
func (a *App) prepareInput(raw []byte) string {
	switch strings.ToLower(strings.TrimSpace(a.cfg.HTMLMode)) {
	case HTMLOn:
		return normalize.FromHTML(raw)
	case HTMLOff:
		return string(raw)
	default:
		if normalize.LooksLikeHTML(string(raw)) {
			log.Debug().Msg("input looks like HTML; flattening")
			return normalize.FromHTML(raw)
		}
		return string(raw)
	}
}

func countPresent(values []string) int {
	n := 0
	for _, v := range values {
		if order.Present(v) {
			n++
		}
	}
	return n
}

func displayPath(p string) string {
	if strings.TrimSpace(p) == "" {
		return "stdout"
	}
	return p
}
