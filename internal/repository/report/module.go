package report

import "go.uber.org/fx"

// Module provides the report repository to Fx.
var Module = fx.Provide(NewRepository)
