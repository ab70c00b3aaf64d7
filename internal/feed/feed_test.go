package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govtrader/internal/config"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(config.FeedConfig{ProviderType: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestNewMongoRequiresURI(t *testing.T) {
	_, err := New(config.FeedConfig{ProviderType: "mongodb"})
	require.Error(t, err)
}

func TestNewRestRequiresURL(t *testing.T) {
	_, err := New(config.FeedConfig{ProviderType: "rest"})
	require.Error(t, err)
}

func TestBuiltinProvidersRegistered(t *testing.T) {
	assert.Equal(t, []string{"mongodb", "rest"}, Names())
}

func TestRestProviderFetchAndKnownIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"protocol":"uniswap","post_id":"p-1","description":"<p>raise fees</p>","discussion_link":"https://forum/p-1","created_at":"2026-08-30T10:00:00Z"},
			{"protocol":"aave","post_id":"p-2","description":"lower rates","discussion_link":"","created_at":"2026-08-30T09:00:00Z"}
		]`))
	}))
	defer srv.Close()

	p, err := New(config.FeedConfig{ProviderType: "rest", RestURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, p.Connect(context.Background()))
	defer func() { _ = p.Disconnect(context.Background()) }()

	proposals, err := p.FetchRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, "uniswap", proposals[0].Protocol)
	assert.Equal(t, "raise fees", proposals[0].Description)

	ids, err := p.KnownPostIDs(context.Background())
	require.NoError(t, err)
	assert.Contains(t, ids, "p-1")
	assert.Contains(t, ids, "p-2")
}

func TestCleanDescription(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "raise the fee tier", "raise the fee tier"},
		{"html stripped", "<p>Raise the <b>fee</b> tier</p>", "Raise the fee tier"},
		{"script dropped", "<p>vote yes</p><script>alert(1)</script>", "vote yes"},
		{"whitespace collapsed", "vote\n\n  yes   now", "vote yes now"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanDescription(tc.in))
		})
	}
}
