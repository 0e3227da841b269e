package app

// Build information populated via -ldflags at build time.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

// VersionString renders build information for -version.
func VersionString() string {
	return "orderextract " + BuildVersion + " (" + BuildCommit + ", " + BuildDate + ")"
}
