package version

// Overridable at build time via -ldflags.
var (
	AppName   = "BookShelf"
	Semver    = "0.3.0"
	BuildDate = "unknown"
)
