package config

import "strings"

// File represents the structure of the fixstatus.yaml or fixstatus.toml configuration file.
// Durations are strings such as "250ms" or "168h".
type File struct {
	Repository string        `yaml:"repository" toml:"repository"`
	APIBase    string        `yaml:"api_base" toml:"api_base"`
	Token      string        `yaml:"token" toml:"token"`
	Snapshot   string        `yaml:"snapshot" toml:"snapshot"`
	Cache      *CacheDTO     `yaml:"cache" toml:"cache"`
	Throttle   *ThrottleDTO  `yaml:"throttle" toml:"throttle"`
	Engine     *EngineDTO    `yaml:"engine" toml:"engine"`
	HTTP       *HTTPDTO      `yaml:"http" toml:"http"`
	Server     *ServerDTO    `yaml:"server" toml:"server"`
	Log        *LogDTO       `yaml:"log" toml:"log"`
	Telemetry  *TelemetryDTO `yaml:"telemetry" toml:"telemetry"`
}

// CacheDTO represents the cache section.
type CacheDTO struct {
	Backend string `yaml:"backend" toml:"backend"`
	Path    string `yaml:"path" toml:"path"`
	TTL     string `yaml:"ttl" toml:"ttl"`
}

// ThrottleDTO represents the throttle section.
type ThrottleDTO struct {
	Spacing string `yaml:"spacing" toml:"spacing"`
	Backoff string `yaml:"backoff" toml:"backoff"`
}

// EngineDTO represents the engine section.
type EngineDTO struct {
	ParallelChannels *bool `yaml:"parallel_channels" toml:"parallel_channels"`
}

// HTTPDTO represents the http section.
type HTTPDTO struct {
	Timeout string `yaml:"timeout" toml:"timeout"`
}

// ServerDTO represents the server section.
type ServerDTO struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// LogDTO represents the log section.
type LogDTO struct {
	Format string `yaml:"format" toml:"format"`
	Level  string `yaml:"level" toml:"level"`
}

// TelemetryDTO represents the telemetry section.
type TelemetryDTO struct {
	Traces string `yaml:"traces" toml:"traces"`
}

// values flattens the fields that were set into dotted viper keys.
func (f *File) values() map[string]any {
	out := make(map[string]any)
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}

	set("repository", f.Repository)
	set("api_base", f.APIBase)
	set("token", f.Token)
	set("snapshot", f.Snapshot)

	if c := f.Cache; c != nil {
		set("cache.backend", c.Backend)
		set("cache.path", c.Path)
		set("cache.ttl", c.TTL)
	}
	if t := f.Throttle; t != nil {
		set("throttle.spacing", t.Spacing)
		set("throttle.backoff", t.Backoff)
	}
	if e := f.Engine; e != nil && e.ParallelChannels != nil {
		out["engine.parallel_channels"] = *e.ParallelChannels
	}
	if h := f.HTTP; h != nil {
		set("http.timeout", h.Timeout)
	}
	if s := f.Server; s != nil {
		set("server.addr", s.Addr)
	}
	if l := f.Log; l != nil {
		set("log.format", l.Format)
		set("log.level", l.Level)
	}
	if t := f.Telemetry; t != nil {
		set("telemetry.traces", t.Traces)
	}

	return nest(out)
}

// nest turns dotted keys into nested maps as viper expects from MergeConfigMap.
func nest(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		m := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := m[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				m[p] = child
			}
			m = child
		}
		m[parts[len(parts)-1]] = value
	}
	return out
}

