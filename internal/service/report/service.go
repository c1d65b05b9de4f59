package report

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/MajjiR/zingoStats/internal/config"
	"github.com/MajjiR/zingoStats/internal/export"
	"github.com/MajjiR/zingoStats/internal/messaging"
	"github.com/MajjiR/zingoStats/internal/report"
	repo "github.com/MajjiR/zingoStats/internal/repository/report"
	"github.com/MajjiR/zingoStats/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/MajjiR/zingoStats/service/report")

// Service computes the three order reports and encodes them for
// download. Monetary columns are rounded here, after retrieval, so
// callers only ever see two-decimal values.
type Service struct {
	repo      *repo.Repository
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Overall returns the summary row for the range. An empty order set
// is a valid outcome: counts and sums come back as zero.
func (s *Service) Overall(ctx context.Context, rng report.DateRange) (report.OverallStats, error) {
	ctx, span := serviceTracer.Start(ctx, "ReportService.Overall", trace.WithAttributes(attribute.String("report.range", rng.Slug())))
	defer span.End()

	stats, err := s.repo.Overall(ctx, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return report.OverallStats{}, classify(err)
	}
	return stats.Rounded(), nil
}

// PerRestaurant returns per-restaurant revenue rows for the range,
// highest net revenue first.
func (s *Service) PerRestaurant(ctx context.Context, rng report.DateRange) ([]report.RestaurantStats, error) {
	ctx, span := serviceTracer.Start(ctx, "ReportService.PerRestaurant", trace.WithAttributes(attribute.String("report.range", rng.Slug())))
	defer span.End()

	rows, err := s.repo.PerRestaurant(ctx, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, classify(err)
	}
	for i := range rows {
		rows[i] = rows[i].Rounded()
	}
	return rows, nil
}

// PerCourier returns per-courier delivery rows for the range, highest
// total order amount first.
func (s *Service) PerCourier(ctx context.Context, rng report.DateRange) ([]report.CourierStats, error) {
	ctx, span := serviceTracer.Start(ctx, "ReportService.PerCourier", trace.WithAttributes(attribute.String("report.range", rng.Slug())))
	defer span.End()

	rows, err := s.repo.PerCourier(ctx, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, classify(err)
	}
	for i := range rows {
		rows[i] = rows[i].Rounded()
	}
	return rows, nil
}

// Export computes the named report and encodes it as a spreadsheet
// download. A successful export publishes an audit event; publish
// failures are logged and never fail the download.
func (s *Service) Export(ctx context.Context, kind report.Kind, rng report.DateRange) (*export.File, error) {
	if !kind.Valid() {
		return nil, errorbank.NotFound("unknown report", errorbank.WithDetail("report", string(kind)))
	}

	ctx, span := serviceTracer.Start(ctx, "ReportService.Export", trace.WithAttributes(
		attribute.String("report.kind", string(kind)),
		attribute.String("report.range", rng.Slug()),
	))
	defer span.End()

	table, err := s.tableFor(ctx, kind, rng)
	if err != nil {
		return nil, err
	}

	data, err := export.Encode(table)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode error")
		return nil, errorbank.Internal("failed to encode report", errorbank.WithCause(err))
	}

	file := &export.File{
		Name:        export.Filename(kind.FileStem(), rng),
		ContentType: export.XLSXContentType,
		Data:        data,
	}

	s.publishExported(ctx, kind, rng, len(table.Rows), len(data))
	return file, nil
}

func (s *Service) tableFor(ctx context.Context, kind report.Kind, rng report.DateRange) (export.Table, error) {
	switch kind {
	case report.KindRestaurants:
		rows, err := s.PerRestaurant(ctx, rng)
		if err != nil {
			return export.Table{}, err
		}
		t := export.Table{Columns: report.RestaurantColumns}
		for _, r := range rows {
			t.Rows = append(t.Rows, r.Row())
		}
		return t, nil
	case report.KindCouriers:
		rows, err := s.PerCourier(ctx, rng)
		if err != nil {
			return export.Table{}, err
		}
		t := export.Table{Columns: report.CourierColumns}
		for _, r := range rows {
			t.Rows = append(t.Rows, r.Row())
		}
		return t, nil
	default:
		stats, err := s.Overall(ctx, rng)
		if err != nil {
			return export.Table{}, err
		}
		return export.Table{
			Columns: report.OverallColumns,
			Rows:    [][]any{stats.Row()},
		}, nil
	}
}

func (s *Service) publishExported(ctx context.Context, kind report.Kind, rng report.DateRange, rows, size int) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := ReportExportedEvent{
		Report:     string(kind),
		Range:      rng.Slug(),
		Rows:       rows,
		SizeBytes:  size,
		ExportedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal report exported", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte("export-"+string(kind)), payload); err != nil {
		s.logger.Error("publish report exported", zap.Error(err))
	}
}

// classify maps store failures onto the error taxonomy: connectivity
// problems become unavailable (the caller may retry later), anything
// else is internal. No partial results accompany either.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return errorbank.Unavailable("order store unreachable", errorbank.WithCause(err))
	}
	return errorbank.Internal("report query failed", errorbank.WithCause(err))
}

// ReportExportedEvent is emitted after a report download is encoded.
type ReportExportedEvent struct {
	Report     string    `json:"report"`
	Range      string    `json:"range"`
	Rows       int       `json:"rows"`
	SizeBytes  int       `json:"size_bytes"`
	ExportedAt time.Time `json:"exported_at"`
}
