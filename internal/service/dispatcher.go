// internal/service/dispatcher.go
package service

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/delivery"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
)

// Dispatcher sends a campaign to a recipient list in fixed-size batches,
// one delivery call per batch, sequentially. A failed batch counts fully as
// failed and never aborts the remaining batches.
type Dispatcher struct {
    Sender      delivery.Sender
    Pacer       Pacer
    From        string
    BatchSize   int
    Timeout     time.Duration
    MaxAttempts int
}

func (d *Dispatcher) Dispatch(ctx context.Context, campaign *model.Campaign, recipients []string) *model.DispatchResult {
    result := &model.DispatchResult{Errors: []string{}}

    batches := chunkRecipients(recipients, d.BatchSize)
    for i, batch := range batches {
        if err := d.Pacer.Wait(ctx); err != nil {
            // Context gone: the remaining batches cannot be attempted.
            for _, rest := range batches[i:] {
                result.Failed += len(rest)
            }
            result.Errors = append(result.Errors, fmt.Sprintf("dispatch interrupted at batch %d: %v", i+1, err))
            break
        }

        if err := d.sendBatch(ctx, campaign, batch); err != nil {
            log.Printf("⚠️ batch %d/%d failed (%d recipients): %v\n", i+1, len(batches), len(batch), err)
            result.Failed += len(batch)
            result.Errors = append(result.Errors, fmt.Sprintf("batch %d: %v", i+1, err))
            continue
        }
        result.Sent += len(batch)
    }

    result.Success = result.Failed == 0
    return result
}

func (d *Dispatcher) sendBatch(ctx context.Context, campaign *model.Campaign, batch []string) error {
    return retryTransient(ctx, d.MaxAttempts, func() error {
        callCtx := ctx
        if d.Timeout > 0 {
            var cancel context.CancelFunc
            callCtx, cancel = context.WithTimeout(ctx, d.Timeout)
            defer cancel()
        }

        return d.Sender.Send(callCtx, &delivery.Email{
            From:    d.From,
            To:      batch,
            Subject: campaign.Subject,
            HTML:    campaign.HTMLContent,
            Text:    campaign.PlainContent,
        })
    })
}

// chunkRecipients partitions addresses into contiguous chunks of at most
// size, preserving order.
func chunkRecipients(recipients []string, size int) [][]string {
    if size < 1 {
        size = 1
    }
    batches := [][]string{}
    for start := 0; start < len(recipients); start += size {
        end := start + size
        if end > len(recipients) {
            end = len(recipients)
        }
        batches = append(batches, recipients[start:end])
    }
    return batches
}
