package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
)

// Worker periodically drains the outbox to the configured publishers.
type Worker struct {
	logger       *slog.Logger
	service      *application.Service
	pollInterval time.Duration
}

func NewWorker(logger *slog.Logger, service *application.Service, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Worker{logger: logger, service: service, pollInterval: pollInterval}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.service.FlushOutbox(ctx); err != nil {
				w.logger.ErrorContext(ctx, "outbox flush failed",
					"module", "events",
					"operation", "flush_outbox",
					"error", err,
				)
			}
		}
	}
}
