package service

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryService periodically pushes the composite amplifier state to
// an external publisher (MQTT in production). It is just another caller
// of the monitoring layer, so device polling stays bounded by the cache
// throttle windows regardless of the tick.
type TelemetryService struct {
	monitoring Monitoring
	pub        Publisher
}

// NewTelemetryService returns the publisher loop. A nil pub disables it.
func NewTelemetryService(monitoring Monitoring, pub Publisher) *TelemetryService {
	return &TelemetryService{monitoring: monitoring, pub: pub}
}

// Run ticks at the given interval until ctx is canceled. Failed reads
// and failed publishes are skipped; the next tick retries.
func (s *TelemetryService) Run(ctx context.Context, tick time.Duration) {
	if s.pub == nil {
		return
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st, err := s.monitoring.GetState(ctx)
			if err != nil {
				continue
			}
			payload, err := json.Marshal(st)
			if err != nil {
				continue
			}
			_ = s.pub.Publish(payload)
		}
	}
}
