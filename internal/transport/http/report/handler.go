package report

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MajjiR/zingoStats/internal/dto"
	"github.com/MajjiR/zingoStats/internal/presentation/http/response"
	"github.com/MajjiR/zingoStats/internal/report"
	service "github.com/MajjiR/zingoStats/internal/service/report"
	"github.com/MajjiR/zingoStats/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/MajjiR/zingoStats/transport/http/report")

// Handler exposes the report endpoints the dashboard shell consumes.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a report Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance. Every endpoint
// takes optional start/end query parameters: both set is an inclusive
// range, start alone is a single day, neither is all time.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/reports")
	g.GET("/overall", h.overall)
	g.GET("/restaurants", h.restaurants)
	g.GET("/couriers", h.couriers)
	g.GET("/:report/export", h.export)
}

func (h *Handler) overall(c echo.Context) error {
	b := response.New(c)

	rng, err := parseRange(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "reports.overall", rangeAttr(rng))
	defer span.End()

	stats, err := h.svc.Overall(ctx, rng)
	if err != nil {
		return b.WithError(err).Build()
	}

	b = b.WithMeta("range", rng.Label())
	if stats.Empty() {
		b = b.WithMeta("message", "no data found "+rng.Label())
	}
	return b.WithData(toOverallDTO(stats)).Build()
}

func (h *Handler) restaurants(c echo.Context) error {
	b := response.New(c)

	rng, err := parseRange(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "reports.restaurants", rangeAttr(rng))
	defer span.End()

	rows, err := h.svc.PerRestaurant(ctx, rng)
	if err != nil {
		return b.WithError(err).Build()
	}

	b = b.WithMeta("range", rng.Label())
	if len(rows) == 0 {
		b = b.WithMeta("message", "no data found "+rng.Label())
	}
	out := make([]dto.RestaurantStatsResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRestaurantDTO(r))
	}
	return b.WithData(out).Build()
}

func (h *Handler) couriers(c echo.Context) error {
	b := response.New(c)

	rng, err := parseRange(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "reports.couriers", rangeAttr(rng))
	defer span.End()

	rows, err := h.svc.PerCourier(ctx, rng)
	if err != nil {
		return b.WithError(err).Build()
	}

	b = b.WithMeta("range", rng.Label())
	if len(rows) == 0 {
		b = b.WithMeta("message", "no data found "+rng.Label())
	}
	out := make([]dto.CourierStatsResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toCourierDTO(r))
	}
	return b.WithData(out).Build()
}

func (h *Handler) export(c echo.Context) error {
	b := response.New(c)

	kind := report.Kind(c.Param("report"))
	if !kind.Valid() {
		return b.WithError(errorbank.NotFound("unknown report",
			errorbank.WithDetail("report", c.Param("report")))).Build()
	}

	rng, err := parseRange(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "reports.export", trace.WithAttributes(
		attribute.String("report.kind", string(kind)),
		attribute.String("report.range", rng.Slug()),
	))
	defer span.End()

	file, err := h.svc.Export(ctx, kind, rng)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithAttachment(file.Name, file.ContentType, file.Data).Build()
}

func parseRange(c echo.Context) (report.DateRange, error) {
	rng, err := report.ParseRange(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return report.DateRange{}, errorbank.BadRequest("invalid date range", errorbank.WithCause(err))
	}
	return rng, nil
}

func rangeAttr(rng report.DateRange) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("report.range", rng.Slug()))
}

func toOverallDTO(s report.OverallStats) dto.OverallStatsResponse {
	return dto.OverallStatsResponse{
		TotalOrders:            s.TotalOrders,
		TotalOrderAmount:       s.TotalOrderAmount,
		TotalRestaurantRevenue: s.TotalRestaurantRevenue,
		TotalDeliveryCharge:    s.TotalDeliveryCharge,
		TotalAdditionalCharge:  s.TotalAdditionalCharge,
	}
}

func toRestaurantDTO(s report.RestaurantStats) dto.RestaurantStatsResponse {
	return dto.RestaurantStatsResponse{
		RestaurantName:        s.RestaurantName,
		TotalOrders:           s.TotalOrders,
		TotalOrderAmount:      s.TotalOrderAmount,
		TotalDeliveryFee:      s.TotalDeliveryFee,
		TotalAdditionalCharge: s.TotalAdditionalCharge,
		TotalRevenue:          s.TotalRevenue,
	}
}

func toCourierDTO(s report.CourierStats) dto.CourierStatsResponse {
	return dto.CourierStatsResponse{
		DeliveryManName:  s.DeliveryManName,
		TotalDeliveries:  s.TotalDeliveries,
		TotalOrderAmount: s.TotalOrderAmount,
		TotalDeliveryFee: s.TotalDeliveryFee,
	}
}
