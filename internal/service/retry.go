package service

import (
    "context"
    "errors"
    "log"
    "time"

    "github.com/sashabaranov/go-openai"
)

// retryTransient runs fn up to maxAttempts times, sleeping with linear
// backoff between attempts. Only errors classified transient are retried;
// permanent errors return immediately.
func retryTransient(ctx context.Context, maxAttempts int, fn func() error) error {
    if maxAttempts < 1 {
        maxAttempts = 1
    }

    var err error
    for attempt := 1; attempt <= maxAttempts; attempt++ {
        err = fn()
        if err == nil {
            return nil
        }
        if !isTransient(err) {
            return err
        }
        if attempt == maxAttempts {
            break
        }

        log.Printf("transient failure (attempt %d/%d): %v\n", attempt, maxAttempts, err)
        select {
        case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
        case <-ctx.Done():
            return ctx.Err()
        }
    }
    return err
}

// isTransient distinguishes retryable failures (network trouble, timeouts,
// rate limits, upstream 5xx) from permanent ones (any other API rejection).
func isTransient(err error) bool {
    if errors.Is(err, context.DeadlineExceeded) {
        return true
    }
    var apiErr *openai.APIError
    if errors.As(err, &apiErr) {
        return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
    }
    var reqErr *openai.RequestError
    if errors.As(err, &reqErr) {
        return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
    }
    // Unclassified errors are treated as network-level and retried.
    return true
}
