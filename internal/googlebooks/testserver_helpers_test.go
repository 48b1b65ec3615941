package googlebooks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, opts Options) *Client {
	t.Helper()

	opts.BaseURL = baseURL
	if opts.APIKey == "" {
		opts.APIKey = "test-key"
	}
	client, err := NewClient(opts)
	require.NoError(t, err)
	return client
}
