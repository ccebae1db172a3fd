package service

import (
	"context"
	"time"

	"femtoamp/internal/models"
	"femtoamp/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Control exposes the writable amplifier attributes.
type Control interface {
	SetGain(ctx context.Context, value int) error
	SetCoupling(ctx context.Context, mode models.CouplingMode) error
	SetSpeed(ctx context.Context, mode models.SpeedMode) error
}

// Monitoring exposes the read-only attributes (status bits, climate,
// amplification, health/lifecycle), refreshing through the cache.
type Monitoring interface {
	GetState(ctx context.Context) (models.AmplifierState, error)
	GetStatus(ctx context.Context) (models.StatusSnapshot, error)
	GetClimate(ctx context.Context) (models.ClimateSnapshot, error)
}

// EventLog exposes the append-only device history with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Telemetry runs the optional background publisher loop.
// Stop via context cancellation in main() for graceful shutdown.
type Telemetry interface {
	Run(ctx context.Context, tick time.Duration)
}

// Publisher delivers one marshaled state payload to an external sink.
// Implemented by the MQTT client in internal/telemetry.
type Publisher interface {
	Publish(payload []byte) error
}

// Service aggregates all sub-services behind one wiring point.
type Service struct {
	Control
	Monitoring
	EventLog
	Telemetry
	Authorization
}

// NewService wires the repository layer and the device state cache into
// concrete services. pub may be nil, in which case telemetry is a no-op.
func NewService(repos *repository.Repository, cache *StateCache, pub Publisher, signingKey string) *Service {
	monitoring := NewMonitoringService(cache, repos.EventRepo)
	return &Service{
		Control:       NewControlService(cache, repos.EventRepo),
		Monitoring:    monitoring,
		EventLog:      NewEventLogService(repos.EventRepo),
		Telemetry:     NewTelemetryService(monitoring, pub),
		Authorization: NewAuthService(repos.Auth, signingKey),
	}
}
