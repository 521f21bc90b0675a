package version

// Version is overridden at build time via -ldflags "-X lcscan/internal/version.Version=...".
var Version = "0.1.0-dev"
