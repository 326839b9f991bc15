// Package config loads the runtime configuration from file, environment and flags.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "FIXSTATUS"

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"repo":       "repository",
	"api-base":   "api_base",
	"token":      "token",
	"snapshot":   "snapshot",
	"cache":      "cache.backend",
	"cache-dir":  "cache.path",
	"log-format": "log.format",
	"log-level":  "log.level",
}

var repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Loader implements ports.ConfigLoader with viper layered over a YAML or TOML file.
type Loader struct {
	flags *pflag.FlagSet
}

// NewLoader creates a new Loader. Flags may be nil.
func NewLoader(flags *pflag.FlagSet) *Loader {
	return &Loader{flags: flags}
}

// Load builds the configuration. Precedence is flag, environment, file, default.
// When path is empty a fixstatus.{yaml,yml,toml} in cwd is used if present.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	v := viper.New()
	setDefaults(v, domain.DefaultConfig())

	configPath, err := findConfiguration(cwd, path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		file, err := readFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(file.values()); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("token", EnvPrefix+"_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}

	if l.flags != nil {
		for name, key := range flagKeys {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "flag", name)
				}
			}
		}
	}

	cfg := &domain.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg.Snapshot = anchor(cwd, cfg.Snapshot)
	cfg.Cache.Path = anchor(cwd, cfg.Cache.Path)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks a configuration against its struct tags.
func Validate(cfg *domain.Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("repository", func(fl validator.FieldLevel) bool {
		return repositoryPattern.MatchString(fl.Field().String())
	}); err != nil {
		return zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			invalid := zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "invalid "+first.Namespace()), "rule", first.Tag())
			return zerr.With(invalid, "value", first.Value())
		}
		return zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}
	return nil
}

func setDefaults(v *viper.Viper, d *domain.Config) {
	v.SetDefault("repository", d.Repository)
	v.SetDefault("api_base", d.APIBase)
	v.SetDefault("token", d.Token)
	v.SetDefault("snapshot", d.Snapshot)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("throttle.spacing", d.Throttle.Spacing)
	v.SetDefault("throttle.backoff", d.Throttle.Backoff)
	v.SetDefault("engine.parallel_channels", d.Engine.ParallelChannels)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("telemetry.traces", d.Telemetry.Traces)
}

func findConfiguration(cwd, path string) (string, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		return path, nil
	}

	for _, ext := range domain.ConfigExtensions {
		candidate := filepath.Join(cwd, domain.ConfigBaseName+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}
	}
	return "", nil
}

// readFile decodes a config file strictly, rejecting unknown keys.
func readFile(configPath string) (*File, error) {
	// #nosec G304 -- configPath comes from the command line or a fixed name in cwd
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	file := &File{}
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(file)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(file)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}
	return file, nil
}

// anchor resolves a relative filesystem path against cwd. URLs are returned unchanged.
func anchor(cwd, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
		return p
	}
	return filepath.Join(cwd, p)
}
