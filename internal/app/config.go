package app

// Config holds runtime configuration for the application.
type Config struct {
	// InputPath is the pasted order block; "-" or empty reads stdin.
	InputPath string
	// OutputPath selects the renderer by extension (.json, .pdf, .xlsx,
	// anything else is plain text); empty writes text to stdout.
	OutputPath string

	// RulesPath optionally overlays a YAML/JSON rule table on the defaults.
	RulesPath string
	// HTMLMode is "auto", "on" or "off" for HTML clipboard payloads.
	HTMLMode string
	// DisableNormalize turns off text normalization; it is on by default.
	DisableNormalize bool

	// PDFFontPath is a TTF font with Hangul glyphs, required for .pdf output.
	PDFFontPath string

	Verbose bool
}

const (
	HTMLAuto = "auto"
	HTMLOn   = "on"
	HTMLOff  = "off"
)
