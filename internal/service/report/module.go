package report

import "go.uber.org/fx"

// Module provides the report service to Fx.
var Module = fx.Provide(NewService)
