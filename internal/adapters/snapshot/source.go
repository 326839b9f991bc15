// Package snapshot loads the release snapshot from disk, HTTP or Cloud Storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/gmackall/flutter-fix-status/internal/build"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/zerr"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

const maxSnapshotBytes = 64 << 20

// Source implements ports.SnapshotSource. The first successful load is kept for
// the lifetime of the Source; failed loads are retried on the next call.
type Source struct {
	location   string
	httpClient *http.Client
	gcsOptions []option.ClientOption
	validate   *validator.Validate

	mu     sync.Mutex
	loaded *domain.Snapshot
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient sets the client used for http and https locations.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.httpClient = c
	}
}

// WithGCSOptions sets the client options used for gs:// locations.
func WithGCSOptions(opts ...option.ClientOption) Option {
	return func(s *Source) {
		s.gcsOptions = opts
	}
}

// New creates a Source for location: a file path, an http(s) URL or a gs://bucket/object URL.
// Locations ending in .gz or .zst are decompressed.
func New(location string, opts ...Option) *Source {
	s := &Source{
		location:   strings.TrimSpace(location),
		httpClient: http.DefaultClient,
		gcsOptions: []option.ClientOption{option.WithoutAuthentication()},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the configured snapshot location.
func (s *Source) Location() string {
	return s.location
}

// Load returns the snapshot. A missing or channel-less snapshot yields an error
// wrapping domain.ErrNoReleaseData.
func (s *Source) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded != nil {
		return s.loaded, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, zerr.With(err, "snapshot", s.location)
	}
	s.loaded = snap
	return snap, nil
}

func (s *Source) load(ctx context.Context) (*domain.Snapshot, error) {
	if s.location == "" {
		return nil, zerr.Wrap(domain.ErrNoReleaseData, "no snapshot configured")
	}

	raw, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	data, err := decompress(s.location, raw)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotParseFailed.Error())
	}

	if isYAML(s.location) {
		return ParseYAML(data, s.validate)
	}
	return Parse(data, s.validate)
}

func (s *Source) read(ctx context.Context) ([]byte, error) {
	switch {
	case strings.HasPrefix(s.location, "http://"), strings.HasPrefix(s.location, "https://"):
		return s.readHTTP(ctx)
	case strings.HasPrefix(s.location, "gs://"):
		return s.readGCS(ctx)
	default:
		return readFile(s.location)
	}
}

func readFile(path string) ([]byte, error) {
	//nolint:gosec // Path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.Wrap(domain.ErrNoReleaseData, "snapshot file does not exist")
		}
		return nil, zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error())
	}
	return data, nil
}

func (s *Source) readHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error())
	}
	req.Header.Set("User-Agent", "fixstatus/"+build.Version)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.Wrap(domain.ErrNoReleaseData, "snapshot URL returned 404")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.Wrap(domain.ErrSnapshotReadFailed, http.StatusText(resp.StatusCode)), "status_code", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error())
	}
	return data, nil
}

func (s *Source) readGCS(ctx context.Context) ([]byte, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(s.location, "gs://"), "/")
	if !ok || bucket == "" || object == "" {
		return nil, zerr.Wrap(domain.ErrSnapshotReadFailed, "gs:// location must name a bucket and an object")
	}

	client, err := storage.NewClient(ctx, s.gcsOptions...)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error())
	}
	defer func() {
		_ = client.Close()
	}()

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, zerr.Wrap(domain.ErrNoReleaseData, "snapshot object does not exist")
		}
		return nil, zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error())
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(reader, maxSnapshotBytes))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error())
	}
	return data, nil
}

func baseName(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	return location
}

// isYAML reports whether location names a .yaml or .yml document, compressed or not.
func isYAML(location string) bool {
	name := strings.TrimSuffix(strings.TrimSuffix(baseName(location), ".gz"), ".zst")
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func decompress(location string, data []byte) ([]byte, error) {
	name := baseName(location)

	switch {
	case strings.HasSuffix(name, ".gz"):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = r.Close()
		}()
		return io.ReadAll(io.LimitReader(r, maxSnapshotBytes))
	case strings.HasSuffix(name, ".zst"):
		d, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

// Parse decodes and validates a snapshot document.
func Parse(data []byte, validate *validator.Validate) (*domain.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, zerr.Wrap(domain.ErrNoReleaseData, "snapshot is empty")
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		if errors.Is(err, domain.ErrSnapshotParseFailed) {
			return nil, err
		}
		return nil, zerr.Wrap(err, domain.ErrSnapshotParseFailed.Error())
	}

	return finish(&snap, validate)
}

// ParseYAML decodes and validates a snapshot written as YAML. Channel order
// follows the order of keys in the document.
func ParseYAML(data []byte, validate *validator.Validate) (*domain.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, zerr.Wrap(domain.ErrNoReleaseData, "snapshot is empty")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSnapshotParseFailed.Error())
	}
	if len(doc.Content) == 0 {
		return nil, zerr.Wrap(domain.ErrNoReleaseData, "snapshot is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, zerr.Wrap(domain.ErrSnapshotParseFailed, "snapshot is not a mapping")
	}

	var snap domain.Snapshot
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		var err error
		switch key {
		case "generated_at":
			err = value.Decode(&snap.GeneratedAt)
		case "source":
			err = value.Decode(&snap.Source)
		case "channels":
			snap.Channels, err = decodeYAMLChannels(value)
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotParseFailed.Error()), "key", key)
		}
	}

	return finish(&snap, validate)
}

func decodeYAMLChannels(node *yaml.Node) (domain.Channels, error) {
	if node.Kind != yaml.MappingNode {
		return nil, zerr.Wrap(domain.ErrSnapshotParseFailed, "channels must be a mapping")
	}
	out := make(domain.Channels, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var releases []domain.Release
		if err := node.Content[i+1].Decode(&releases); err != nil {
			return nil, err
		}
		out = append(out, domain.Channel{Name: node.Content[i].Value, Releases: releases})
	}
	return out, nil
}

func finish(snap *domain.Snapshot, validate *validator.Validate) (*domain.Snapshot, error) {
	if snap.Empty() {
		return nil, zerr.Wrap(domain.ErrNoReleaseData, "snapshot has no channels")
	}

	if validate != nil {
		if err := validate.Struct(snap); err != nil {
			return nil, zerr.Wrap(err, domain.ErrSnapshotInvalid.Error())
		}
	}

	for i := range snap.Channels {
		for j := range snap.Channels[i].Releases {
			r := &snap.Channels[i].Releases[j]
			r.FrameworkSHA = strings.ToLower(r.FrameworkSHA)
		}
	}
	return snap, nil
}
