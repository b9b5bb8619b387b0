package googleindex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ahmet-ozay-website/config"
)

func TestNewPublisherWithoutKeyIsDisabled(t *testing.T) {
	p, err := NewPublisher(context.Background(), &config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())
}

func TestNewPublisherRejectsGarbageKey(t *testing.T) {
	_, err := NewPublisher(context.Background(), &config.Config{GoogleServiceAccountKey: "not-a-key!"}, zap.NewNop())
	assert.Error(t, err)
}

func TestSubmit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, ActionUpdated, body["type"])
		if calls.Add(1) == 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPublisherWithClient(srv.Client(), srv.URL, zap.NewNop())
	require.True(t, p.Enabled())

	status, err := p.Submit(context.Background(), []string{"https://a/1", "https://a/2", "https://a/3"}, "")
	assert.EqualError(t, err, "1 of 3 urls failed")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSubmitRejectsUnknownAction(t *testing.T) {
	p := NewPublisherWithClient(http.DefaultClient, "http://127.0.0.1:0", zap.NewNop())
	_, err := p.Submit(context.Background(), []string{"https://a/1"}, "URL_PURGED")
	assert.Error(t, err)
}
