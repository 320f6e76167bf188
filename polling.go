package client

import (
	"context"
	"fmt"
	"time"
)

// WaitForProcessing polls GetDocument until the document is completed or
// failed, or ctx ends. Fetch errors are returned immediately.
func (c *client) WaitForProcessing(ctx context.Context, documentID string, pollInterval time.Duration) (*DocumentResponse, error) {
	if documentID == "" {
		return nil, ErrEmptyDocumentID
	}

	return waitWithPolling(ctx, documentID, pollInterval, OperationWaitForProcessed, c.processingTimeout, c.GetDocument, func(doc *DocumentResponse) (bool, error) {
		switch doc.ProcessingStatus {
		case ProcessingStatusCompleted:
			return true, nil
		case ProcessingStatusFailed:
			return false, fmt.Errorf("%w for document %s (trace-id: %s)", ErrProcessingFailed, documentID, normalizeTraceID(doc.TraceID))
		default:
			return false, nil
		}
	})
}

// withProcessingTimeout wraps the context with the provided timeout if it lacks a deadline.
func withProcessingTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	if timeout <= 0 {
		timeout = ProcessingTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

// waitWithPolling repeatedly fetches status until evaluate reports completion or failure.
func waitWithPolling[T any](ctx context.Context, id string, pollInterval time.Duration, operation Operation,
	timeout time.Duration,
	fetch func(context.Context, string) (*T, error),
	evaluate func(*T) (bool, error),
) (*T, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	ctx, cancel := withProcessingTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		result, err := fetch(ctx, id)
		if err != nil {
			return nil, err
		}

		done, evalErr := evaluate(result)
		if evalErr != nil {
			return nil, evalErr
		}
		if done {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s cancelled: %w", operation, ctx.Err())
		case <-ticker.C:
		}
	}
}
