package http

import (
	"go.uber.org/fx"

	reporttransport "github.com/MajjiR/zingoStats/internal/transport/http/report"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	reporttransport.Module,
)
