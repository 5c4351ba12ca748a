// Package worker drains the print queue: each job carries a rendered ticket
// PDF that is forwarded to the print server and, when configured, archived
// to S3.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ArielAmzalak/SenhasGF4/pkg/printer"
	"github.com/ArielAmzalak/SenhasGF4/pkg/queue"
	"github.com/ArielAmzalak/SenhasGF4/pkg/storage"
)

// PrintProcessor processes ticket print jobs.
type PrintProcessor struct {
	printer *printer.Client
	s3      *storage.S3
	queue   *queue.Queue
	logger  *zap.Logger
}

// NewPrintProcessor creates a print-job processor. printer and s3 may be nil;
// a nil printer makes forwarding a no-op and a nil s3 skips archiving.
func NewPrintProcessor(p *printer.Client, s3 *storage.S3, q *queue.Queue, logger *zap.Logger) *PrintProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintProcessor{printer: p, s3: s3, queue: q, logger: logger}
}

// Process executes one print job.
func (p *PrintProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeTicketPrint {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.TicketPrintPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if len(payload.PDF) == 0 {
		return fmt.Errorf("empty pdf in job %s", job.ID)
	}

	if err := p.printer.SendPDF(ctx, payload.PDF); err != nil {
		return fmt.Errorf("forward to print server: %w", err)
	}

	if p.s3 != nil {
		key := storage.TicketKey(job.CreatedAt, payload.SubmissionID.String())
		if _, err := p.s3.UploadTicketPDF(ctx, key, payload.PDF); err != nil {
			// The ticket already printed; archiving is best effort.
			p.logger.Error("ticket archive failed", zap.Error(err), zap.String("job_id", job.ID))
		}
	}

	p.logger.Info("print job processed",
		zap.String("job_id", job.ID),
		zap.String("submission_id", payload.SubmissionID.String()),
		zap.Strings("areas", payload.Areas),
	)
	return nil
}

// Run consumes jobs until ctx is cancelled.
func (p *PrintProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("print job failed", zap.Error(err), zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
			if err := p.queue.Retry(ctx, job); err != nil {
				p.logger.Error("retry failed", zap.Error(err), zap.String("job_id", job.ID))
			}
		}
	}
}
