package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ArielAmzalak/SenhasGF4/pkg/printer"
	"github.com/ArielAmzalak/SenhasGF4/pkg/queue"
	"github.com/ArielAmzalak/SenhasGF4/pkg/storage"
)

// Direct forwards print jobs inline, for deployments without Redis. It
// satisfies the handler's PrintQueue interface so the submission path does
// not care whether printing is queued or synchronous.
type Direct struct {
	printer *printer.Client
	s3      *storage.S3
	logger  *zap.Logger
}

// NewDirect creates a synchronous print sender. printer and s3 may be nil.
func NewDirect(p *printer.Client, s3 *storage.S3, logger *zap.Logger) *Direct {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Direct{printer: p, s3: s3, logger: logger}
}

// EnqueueTicketPrint sends the PDF to the print server immediately and
// archives it when S3 is configured.
func (d *Direct) EnqueueTicketPrint(ctx context.Context, payload queue.TicketPrintPayload) error {
	if err := d.printer.SendPDF(ctx, payload.PDF); err != nil {
		return err
	}
	if d.s3 != nil {
		key := storage.TicketKey(time.Now(), payload.SubmissionID.String())
		if _, err := d.s3.UploadTicketPDF(ctx, key, payload.PDF); err != nil {
			d.logger.Error("ticket archive failed", zap.Error(err),
				zap.String("submission_id", payload.SubmissionID.String()))
		}
	}
	return nil
}
