package report

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/MajjiR/zingoStats/internal/config"
	"github.com/MajjiR/zingoStats/internal/messaging"
	reportsvc "github.com/MajjiR/zingoStats/internal/service/report"
	"github.com/MajjiR/zingoStats/internal/worker"
)

var workerTracer = otel.Tracer("github.com/MajjiR/zingoStats/worker/report")

// Module registers report-related worker handlers.
var Module = fx.Module("worker_report",
	fx.Provide(
		fx.Annotate(
			NewExportedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewExportedHandler sets up a worker handler that records report
// export events for the audit trail.
func NewExportedHandler(log *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.reports.exported", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event reportsvc.ReportExportedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("failed to decode report exported", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		log.Info("report exported",
			zap.String("report", event.Report),
			zap.String("range", event.Range),
			zap.Int("rows", event.Rows),
			zap.Int("size_bytes", event.SizeBytes),
		)
		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
