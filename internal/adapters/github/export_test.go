package github

import (
	"net/http"

	"github.com/gmackall/flutter-fix-status/internal/adapters/credential"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
)

// NewClientWithHTTP exports newClientWithHTTP for testing.
func NewClientWithHTTP(
	baseURL, repository string,
	httpClient *http.Client,
	token *credential.Token,
	metrics ports.Metrics,
) *Client {
	return newClientWithHTTP(baseURL, repository, httpClient, token, metrics)
}

// NextLink exports nextLink for testing.
var NextLink = nextLink
