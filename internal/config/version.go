package config

// Version is the graphloader binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/graphloader/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
