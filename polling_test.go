package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusServer reports the given statuses in order, repeating the last one.
func statusServer(t *testing.T, statuses ...ProcessingStatus) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, fmt.Sprintf(`{"id":"d1","processingStatus":%q}`, statuses[n]))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestWaitForProcessingCompletes(t *testing.T) {
	srv, calls := statusServer(t, ProcessingStatusPending, ProcessingStatusProcessing, ProcessingStatusCompleted)

	c := NewClient(srv.URL)
	doc, err := c.WaitForProcessing(context.Background(), "d1", 5*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, ProcessingStatusCompleted, doc.ProcessingStatus)
	assert.EqualValues(t, 3, calls.Load())
}

func TestWaitForProcessingFailed(t *testing.T) {
	srv, _ := statusServer(t, ProcessingStatusProcessing, ProcessingStatusFailed)

	c := NewClient(srv.URL)
	_, err := c.WaitForProcessing(context.Background(), "d1", 5*time.Millisecond)
	require.ErrorIs(t, err, ErrProcessingFailed)
	assert.Contains(t, err.Error(), "processing failed for document d1")
}

func TestWaitForProcessingHonoursContext(t *testing.T) {
	srv, _ := statusServer(t, ProcessingStatusProcessing)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL)
	_, err := c.WaitForProcessing(ctx, "d1", 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForProcessingUsesProcessingTimeout(t *testing.T) {
	srv, _ := statusServer(t, ProcessingStatusProcessing)

	c := NewClient(srv.URL, WithProcessingTimeout(30*time.Millisecond))
	_, err := c.WaitForProcessing(context.Background(), "d1", 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForProcessingStopsOnFetchError(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusInternalServerError, `boom`)

	c := NewClient(srv.URL)
	_, err := c.WaitForProcessing(context.Background(), "d1", time.Millisecond)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 1, rec.count())

	_, err = c.WaitForProcessing(context.Background(), "", time.Millisecond)
	assert.ErrorIs(t, err, ErrEmptyDocumentID)
}
