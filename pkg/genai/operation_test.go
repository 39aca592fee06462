package genai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOperation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1beta/fileSearchStores/abc123/operations/op-1", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("x-goog-api-key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"fileSearchStores/abc123/operations/op-1","done":true}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	op, err := client.GetOperation(context.Background(), "key-123", "fileSearchStores/abc123/operations/op-1")
	require.NoError(t, err)
	assert.True(t, op.Done)
}

func TestWaitForImportAlreadyDoneSkipsPolling(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no poll expected for an operation that is already done")
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	confirmed, err := client.WaitForImport(
		context.Background(),
		"key-123",
		&Operation{Name: "fileSearchStores/abc123/operations/op-1", Done: true},
		time.Millisecond,
		time.Second,
	)
	require.NoError(t, err)
	assert.True(t, confirmed)
}

func TestWaitForImportConfirmsAfterPolls(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if polls.Add(1) < 3 {
			_, _ = w.Write([]byte(`{"name":"fileSearchStores/abc123/operations/op-1","done":false}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"fileSearchStores/abc123/operations/op-1","done":true}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	confirmed, err := client.WaitForImport(
		context.Background(),
		"key-123",
		&Operation{Name: "fileSearchStores/abc123/operations/op-1"},
		5*time.Millisecond,
		time.Second,
	)
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.Equal(t, int32(3), polls.Load())
}

func TestWaitForImportBudgetExhausted(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"fileSearchStores/abc123/operations/op-1","done":false}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	confirmed, err := client.WaitForImport(
		context.Background(),
		"key-123",
		&Operation{Name: "fileSearchStores/abc123/operations/op-1"},
		5*time.Millisecond,
		32*time.Millisecond,
	)
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestWaitForImportPollFailureEndsWaitSilently(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	confirmed, err := client.WaitForImport(
		context.Background(),
		"key-123",
		&Operation{Name: "fileSearchStores/abc123/operations/op-1"},
		5*time.Millisecond,
		time.Second,
	)
	require.NoError(t, err)
	assert.False(t, confirmed)
	assert.Equal(t, int32(1), polls.Load())
}

func TestWaitForImportContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("http://127.0.0.1:1", "")
	confirmed, err := client.WaitForImport(
		ctx,
		"key-123",
		&Operation{Name: "fileSearchStores/abc123/operations/op-1"},
		time.Second,
		time.Minute,
	)
	assert.False(t, confirmed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitForImportNilOperation(t *testing.T) {
	t.Parallel()

	client := NewClient("http://127.0.0.1:1", "")
	confirmed, err := client.WaitForImport(context.Background(), "key-123", nil, time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.False(t, confirmed)
}
