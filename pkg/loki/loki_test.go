package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "SomeUrl"
	shipper, err := New(context.Background(), cfg, &MockLogger{})
	assert.NoError(t, err)
	assert.Equal(t, cfg.Url, shipper.config.Url)
	assert.Equal(t, 1000, shipper.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, shipper.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, shipper.config.Labels)
}

func Test_Shipper_OnStop_ShouldFlushPendingBatch(t *testing.T) {

	received := make(chan pushRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			t.Errorf("failed to read gzip body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req pushRequest
		if err = json.NewDecoder(gz).Decode(&req); err != nil {
			t.Errorf("failed to decode push request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- req
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	shipper, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Minute,
		Labels:       map[string]string{"app": "gestion-personal"},
	}, &MockLogger{})
	assert.NoError(t, err)

	assert.NoError(t, shipper.Push(LogEntry{Level: "info", Message: "primero"}))
	assert.NoError(t, shipper.Push(LogEntry{Level: "error", Message: "segundo"}))

	// BatchMaxWait is a minute, so only the shutdown flush can deliver these.
	shipper.Stop()

	select {
	case req := <-received:
		assert.Len(t, req.Streams, 1)
		assert.Equal(t, "gestion-personal", req.Streams[0].Stream["app"])
		assert.Len(t, req.Streams[0].Values, 2)
		assert.Contains(t, req.Streams[0].Values[0][1], "primero")
		assert.Contains(t, req.Streams[0].Values[1][1], "segundo")
	default:
		t.Fatal("pending batch was not flushed on stop")
	}
}
