package app

import (
	"go.uber.org/fx"

	"github.com/MajjiR/zingoStats/internal/config"
	"github.com/MajjiR/zingoStats/internal/database"
	"github.com/MajjiR/zingoStats/internal/logger"
	"github.com/MajjiR/zingoStats/internal/messaging"
	"github.com/MajjiR/zingoStats/internal/observability"
	repositoryreport "github.com/MajjiR/zingoStats/internal/repository/report"
	httpserver "github.com/MajjiR/zingoStats/internal/server/http"
	servicereport "github.com/MajjiR/zingoStats/internal/service/report"
	transporthttp "github.com/MajjiR/zingoStats/internal/transport/http"
	"github.com/MajjiR/zingoStats/internal/worker"
	workerreport "github.com/MajjiR/zingoStats/internal/worker/report"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryreport.Module,
	servicereport.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes the export-event consumer.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerreport.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
