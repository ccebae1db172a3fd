package service

import (
	"context"
	"sync"
	"time"

	"femtoamp/internal/models"
	"femtoamp/internal/repository"

	"github.com/google/uuid"
)

// MonitoringService reads the amplifier through the state cache and
// records FAULT/FAULT_CLEARED events whenever a status refresh flips
// the derived health.
type MonitoringService struct {
	cache     *StateCache
	eventRepo repository.EventRepo

	mu         sync.Mutex
	lastHealth models.HealthState
}

func NewMonitoringService(cache *StateCache, eventRepo repository.EventRepo) *MonitoringService {
	return &MonitoringService{cache: cache, eventRepo: eventRepo}
}

// GetStatus returns the (throttled) status snapshot. On a failed
// refresh the last-known-good snapshot accompanies the error.
func (s *MonitoringService) GetStatus(ctx context.Context) (models.StatusSnapshot, error) {
	snap, err := s.cache.Status()
	if err != nil {
		return snap, err
	}
	s.noteHealth(ctx, snap)
	return snap, nil
}

// GetClimate returns the (throttled) temperature/humidity snapshot.
func (s *MonitoringService) GetClimate(ctx context.Context) (models.ClimateSnapshot, error) {
	return s.cache.Climate()
}

// GetState assembles the composite view served to API and WebSocket
// clients: status bits, derived amplification, climate and the
// lifecycle state. Both cache groups are refresh-gated on the way.
func (s *MonitoringService) GetState(ctx context.Context) (models.AmplifierState, error) {
	status, err := s.GetStatus(ctx)
	if err != nil {
		return models.AmplifierState{}, err
	}
	climate, err := s.cache.Climate()
	if err != nil {
		return models.AmplifierState{}, err
	}
	updated := status.RefreshedAt
	if climate.RefreshedAt.After(updated) {
		updated = climate.RefreshedAt
	}
	return models.AmplifierState{
		Gain:            status.Gain,
		Coupling:        status.Coupling,
		Speed:           status.Speed,
		Overload:        status.Overload,
		AmplificationVA: status.Amplification(),
		TemperatureC:    climate.TemperatureC,
		HumidityPct:     climate.HumidityPct,
		Health:          status.Health(),
		State:           s.cache.Lifecycle(),
		UpdatedAt:       updated,
	}, nil
}

// noteHealth appends a FAULT or FAULT_CLEARED event on health
// transitions. The very first observation only seeds the baseline
// unless it is already an overload.
func (s *MonitoringService) noteHealth(ctx context.Context, snap models.StatusSnapshot) {
	health := snap.Health()

	s.mu.Lock()
	prev := s.lastHealth
	s.lastHealth = health
	s.mu.Unlock()

	if prev == health {
		return
	}
	if prev == "" && health == models.HealthNormal {
		return
	}

	typ := models.EventFaultCleared
	desc := "Overload cleared"
	if health == models.HealthOverload {
		typ = models.EventFault
		desc = "Amplifier overload"
	}
	_ = s.eventRepo.Append(ctx, models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata: map[string]any{
			"gain":  snap.Gain,
			"speed": snap.Speed.String(),
		},
	})
}
