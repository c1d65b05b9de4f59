package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MajjiR/zingoStats/internal/config"
	"github.com/MajjiR/zingoStats/internal/messaging"
	reportsvc "github.com/MajjiR/zingoStats/internal/service/report"
)

func TestExportedHandlerDecodesEvent(t *testing.T) {
	cfg := config.Config{Messaging: config.Messaging{
		Kafka: config.Kafka{Topic: "reports.exports"},
	}}
	reg := NewExportedHandler(zap.NewNop(), cfg)
	assert.Equal(t, "reports.exports", reg.Topic)

	event := reportsvc.ReportExportedEvent{
		Report:     "couriers",
		Range:      "2024-03-10_to_2024-03-31",
		Rows:       2,
		SizeBytes:  5120,
		ExportedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	err = reg.Handler(context.Background(), messaging.Message{
		Topic: "reports.exports",
		Value: payload,
	})
	assert.NoError(t, err)
}

func TestExportedHandlerRejectsMalformedPayload(t *testing.T) {
	reg := NewExportedHandler(zap.NewNop(), config.Config{})

	err := reg.Handler(context.Background(), messaging.Message{
		Topic: "reports.exports",
		Value: []byte("{not json"),
	})
	assert.Error(t, err)
}
