package httpapi_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/adapters/httpapi"
	"github.com/gmackall/flutter-fix-status/internal/adapters/telemetry"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fakeService struct {
	resolution *domain.Resolution
	report     *domain.Report
	commit     *domain.CommitReport
	err        error

	lastQuery string
}

func (f *fakeService) Resolve(_ context.Context, query string) (*domain.Resolution, error) {
	f.lastQuery = query
	return f.resolution, f.err
}

func (f *fakeService) Check(_ context.Context, query string) (*domain.Report, error) {
	f.lastQuery = query
	return f.report, f.err
}

func (f *fakeService) CheckCommit(_ context.Context, sha string) (*domain.CommitReport, error) {
	f.lastQuery = sha
	return f.commit, f.err
}

func newServer(t *testing.T, svc httpapi.Service) *httpapi.Server {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return httpapi.New(svc, telemetry.NewMetrics(), logger)
}

func get(t *testing.T, srv *httpapi.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Full(t *testing.T) {
	version := "3.19.0"
	ago := 0
	svc := &fakeService{report: &domain.Report{
		Resolution: domain.Resolution{Query: "#123", Kind: domain.KindAmbiguous, Commits: []string{"abc"}},
		Channels: []domain.ChannelStatus{
			{Channel: "stable", LatestVersion: "3.19.0", Included: true, FirstVersion: &version, ReleasesAgo: &ago},
			{Channel: "beta", LatestVersion: "3.20.0"},
		},
	}}
	srv := newServer(t, svc)

	rec := get(t, srv, "/full?query=%23123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#123", svc.lastQuery)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "#123", body["query"])
	assert.Equal(t, "ambiguous", body["type"])
	channels, ok := body["channels"].([]any)
	require.True(t, ok)
	require.Len(t, channels, 2)

	beta, ok := channels[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, beta["included"])
	assert.Nil(t, beta["first_version"])
	assert.Nil(t, beta["releases_ago"])
	assert.Contains(t, beta, "first_date")
}

func TestServer_Resolve(t *testing.T) {
	svc := &fakeService{resolution: &domain.Resolution{Query: "abcdef1", Kind: domain.KindCommit, Commits: []string{"abcdef1"}}}
	srv := newServer(t, svc)

	rec := get(t, srv, "/resolve?query=abcdef1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"query":"abcdef1","type":"commit","commits":["abcdef1"]}`, rec.Body.String())
}

func TestServer_Check(t *testing.T) {
	svc := &fakeService{commit: &domain.CommitReport{Commit: "abcdef1", Channels: []domain.ChannelStatus{}}}
	srv := newServer(t, svc)

	rec := get(t, srv, "/check?commit=abcdef1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abcdef1", svc.lastQuery)
	assert.JSONEq(t, `{"commit":"abcdef1","channels":[]}`, rec.Body.String())
}

func TestServer_MissingParameter(t *testing.T) {
	srv := newServer(t, &fakeService{})

	for _, target := range []string{"/full", "/resolve?query=", "/check?commit=%20"} {
		rec := get(t, srv, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{name: "NoData", err: zerr.Wrap(domain.ErrNoReleaseData, "snapshot has no channels"), status: http.StatusServiceUnavailable, label: "no data"},
		{name: "RateLimited", err: zerr.Wrap(domain.ErrRateLimited, "API rate limit exceeded"), status: http.StatusTooManyRequests, label: "rate limited"},
		{name: "Unauthorized", err: zerr.Wrap(domain.ErrUnauthorized, "Bad credentials"), status: http.StatusTooManyRequests, label: "rate limited"},
		{name: "Transport", err: zerr.Wrap(domain.ErrGitHubTransport, "connection reset"), status: http.StatusBadGateway, label: "upstream error"},
		{name: "InvalidCommit", err: domain.ErrInvalidCommit, status: http.StatusBadRequest, label: "bad request"},
		{name: "Other", err: zerr.New("boom"), status: http.StatusInternalServerError, label: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, &fakeService{err: tt.err})

			rec := get(t, srv, "/full?query=123")
			require.Equal(t, tt.status, rec.Code)

			var body httpapi.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.label, body.Status)
			assert.Equal(t, tt.err.Error(), body.Error)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestServer_RateLimitCarriesRemediation(t *testing.T) {
	srv := newServer(t, &fakeService{err: zerr.Wrap(domain.ErrRateLimited, "API rate limit exceeded")})

	rec := get(t, srv, "/resolve?query=1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "GITHUB_TOKEN")
}

func TestServer_RequestIDPropagated(t *testing.T) {
	srv := newServer(t, &fakeService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	req.Header.Set("X-Request-ID", "req-42")
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestServer_Metrics(t *testing.T) {
	srv := newServer(t, &fakeService{})

	rec := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_ServeShutsDown(t *testing.T) {
	srv := newServer(t, &fakeService{})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, listener)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
