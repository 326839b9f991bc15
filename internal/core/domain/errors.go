package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyQuery is returned when a query is blank after trimming.
	ErrEmptyQuery = zerr.New("query is empty")

	// ErrInvalidCommit is returned when a commit parameter is not a 7 to 40 character hex hash.
	ErrInvalidCommit = zerr.New("commit must be a 7 to 40 character hexadecimal hash")

	// ErrNotFound is returned when the remote entity does not exist.
	ErrNotFound = zerr.New("not found on GitHub")

	// ErrRateLimited is returned when GitHub refuses a request because the rate limit is exhausted.
	ErrRateLimited = zerr.New("GitHub API rate limit exceeded; supply a GitHub token with --token or GITHUB_TOKEN to raise rate limits")

	// ErrUnauthorized is returned when GitHub rejects the supplied credential.
	ErrUnauthorized = zerr.New("GitHub rejected the request as unauthorized; check that the supplied GitHub token is valid")

	// ErrGitHubRequestFailed is returned when a GitHub API request answers with an unexpected status.
	ErrGitHubRequestFailed = zerr.New("GitHub API request failed")

	// ErrGitHubTransport is returned when a GitHub API request cannot be completed.
	ErrGitHubTransport = zerr.New("failed to reach GitHub API")

	// ErrGitHubParseFailed is returned when a GitHub API response cannot be decoded.
	ErrGitHubParseFailed = zerr.New("failed to parse GitHub API response")

	// ErrNoReleaseData is returned when the release snapshot is absent or has no channels.
	ErrNoReleaseData = zerr.New("no release data")

	// ErrSnapshotReadFailed is returned when the release snapshot cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read release snapshot")

	// ErrSnapshotParseFailed is returned when the release snapshot cannot be decoded.
	ErrSnapshotParseFailed = zerr.New("failed to parse release snapshot")

	// ErrSnapshotInvalid is returned when the release snapshot fails validation.
	ErrSnapshotInvalid = zerr.New("invalid release snapshot")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the merged configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrCacheOpenFailed is returned when a cache backend cannot be opened.
	ErrCacheOpenFailed = zerr.New("failed to open inclusion cache")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read inclusion cache")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write inclusion cache")

	// ErrUnknownCacheBackend is returned when the configured cache backend is not supported.
	ErrUnknownCacheBackend = zerr.New("unknown cache backend, expected file, badger, sqlite, memory or none")

	// ErrCredentialUnavailable is returned when the sealed token cannot be opened.
	ErrCredentialUnavailable = zerr.New("GitHub token is unavailable")

	// ErrServerFailed is returned when the HTTP API server stops unexpectedly.
	ErrServerFailed = zerr.New("HTTP server failed")
)
