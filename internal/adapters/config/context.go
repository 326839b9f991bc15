package config

import (
	"context"

	"github.com/spf13/pflag"
)

type flagsKey struct{}

// WithFlags returns a context carrying the parsed global command-line flags.
func WithFlags(ctx context.Context, flags *pflag.FlagSet) context.Context {
	return context.WithValue(ctx, flagsKey{}, flags)
}

// FlagsFrom returns the flags stored by WithFlags, or nil.
func FlagsFrom(ctx context.Context) *pflag.FlagSet {
	flags, _ := ctx.Value(flagsKey{}).(*pflag.FlagSet)
	return flags
}

// flagString returns the value of a string flag, or "" when absent.
func flagString(flags *pflag.FlagSet, name string) string {
	if flags == nil {
		return ""
	}
	value, err := flags.GetString(name)
	if err != nil {
		return ""
	}
	return value
}
