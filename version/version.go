package version

// Version is the release version, overridable at build time with
// -ldflags "-X fastawc/version.Version=...".
var Version = "1.0.0"
