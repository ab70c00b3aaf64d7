package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govtrader/internal/types"
)

func modelServer(t *testing.T, handlers map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Text)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientScore(t *testing.T) {
	srv := modelServer(t, map[string]any{
		"/sentiment": map[string]any{"label": "Positive", "score": 0.87},
	})
	c := NewClient(srv.URL, time.Second)

	label, score, err := c.Score(context.Background(), "raise the fee")
	require.NoError(t, err)
	assert.Equal(t, types.SentimentPositive, label)
	assert.InDelta(t, 0.87, score, 1e-9)
}

func TestClientScoreRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
	}{
		{"unknown label", map[string]any{"label": "bullish", "score": 0.9}},
		{"score out of range", map[string]any{"label": "positive", "score": 1.2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := modelServer(t, map[string]any{"/sentiment": tc.body})
			c := NewClient(srv.URL, time.Second)
			_, _, err := c.Score(context.Background(), "text")
			assert.Error(t, err)
		})
	}
}

func TestClientSummarize(t *testing.T) {
	srv := modelServer(t, map[string]any{
		"/summarize": map[string]any{"summary": "fee increase proposal"},
	})
	c := NewClient(srv.URL, time.Second)

	summary, err := c.Summarize(context.Background(), "long description")
	require.NoError(t, err)
	assert.Equal(t, "fee increase proposal", summary)
}

func TestClientSummarizeRejectsEmpty(t *testing.T) {
	srv := modelServer(t, map[string]any{
		"/summarize": map[string]any{"summary": "  "},
	})
	c := NewClient(srv.URL, time.Second)

	_, err := c.Summarize(context.Background(), "long description")
	assert.Error(t, err)
}

func TestDirectionPredictors(t *testing.T) {
	srv := modelServer(t, map[string]any{
		"/predict/bullish": map[string]any{"target_percent": 5.0},
		"/predict/bearish": map[string]any{"target_percent": 3.5},
	})
	c := NewClient(srv.URL, time.Second)

	up, err := c.BullishPredictor().PredictTargetPercent(context.Background(), "text")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, up, 1e-9)

	down, err := c.BearishPredictor().PredictTargetPercent(context.Background(), "text")
	require.NoError(t, err)
	assert.InDelta(t, 3.5, down, 1e-9)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, time.Second)

	_, _, err := c.Score(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
