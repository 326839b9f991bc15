package commands

import "github.com/spf13/pflag"

// GlobalFlags returns a fresh set of the persistent flags shared by every command.
// Defaults are empty so that unset flags never shadow the environment or config file.
func GlobalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.String("config", "", "Path to a fixstatus.yaml or fixstatus.toml file")
	fs.String("token", "", "GitHub token (defaults to $GITHUB_TOKEN)")
	fs.String("repo", "", "Repository to query, as owner/name")
	fs.String("api-base", "", "Base URL of the GitHub REST API")
	fs.String("snapshot", "", "Release snapshot location (path, http(s):// or gs:// URL)")
	fs.String("cache", "", "Inclusion cache backend: file, badger, sqlite, memory or none")
	fs.String("cache-dir", "", "Directory holding the inclusion cache")
	fs.String("log-format", "", "Log format: pretty or json")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
	return fs
}

// ParseGlobalFlags extracts the global flags from args, ignoring everything else.
// Errors are left for the full command parse to report.
func ParseGlobalFlags(args []string) *pflag.FlagSet {
	fs := GlobalFlags()
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.Usage = func() {}
	_ = fs.Parse(args)
	return fs
}
