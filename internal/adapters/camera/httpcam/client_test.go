package httpcam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureReturnsSnapshot(t *testing.T) {
	t.Parallel()

	frame := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(frame)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	snapshot, err := client.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, frame, snapshot.Data)
	assert.Equal(t, "image/jpeg", snapshot.ContentType)
}

func TestCaptureDefaultsContentType(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("frame"))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	snapshot, err := client.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultContentType, snapshot.ContentType)
}

func TestCaptureRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "camera offline", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	_, err := client.Capture(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "camera offline")
}

func TestCaptureRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	_, err := client.Capture(context.Background())
	require.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestCaptureReportsConnectionError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Capture(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "perform request")
}
