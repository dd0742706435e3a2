package cleanup

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/exithook/internal/funnel"
)

// sendFunnelData transmits data once. Failures are logged, never retried or returned.
func sendFunnelData(ctx context.Context, sender FunnelSender, data funnel.Data) {
	logger := zerolog.Ctx(ctx)

	if err := sender.Send(ctx, data); err != nil {
		logger.Error().Msg("Error in sending funnel data: " + err.Error())
		return
	}
	logger.Debug().Msg("Funnel data sent successfully from cleanup")
}
