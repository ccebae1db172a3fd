package service

import (
	"context"
	"time"

	"femtoamp/internal/models"
	"femtoamp/internal/repository"

	"github.com/google/uuid"
)

// ControlService forwards attribute writes to the device through the
// cache and records each applied change in the device history.
type ControlService struct {
	cache     *StateCache
	eventRepo repository.EventRepo
}

func NewControlService(cache *StateCache, eventRepo repository.EventRepo) *ControlService {
	return &ControlService{cache: cache, eventRepo: eventRepo}
}

// SetGain writes a new gain step and logs a SETTING_CHANGE event.
// The cache is not updated here; the next throttled status read picks
// up what the device actually applied.
func (s *ControlService) SetGain(ctx context.Context, value int) error {
	if err := s.cache.SetGain(value); err != nil {
		return err
	}
	return s.appendChange(ctx, "gain", value)
}

// SetCoupling writes the input coupling mode and logs the change.
func (s *ControlService) SetCoupling(ctx context.Context, mode models.CouplingMode) error {
	if err := s.cache.SetCoupling(mode); err != nil {
		return err
	}
	return s.appendChange(ctx, "coupling", mode.String())
}

// SetSpeed writes the speed mode and logs the change.
func (s *ControlService) SetSpeed(ctx context.Context, mode models.SpeedMode) error {
	if err := s.cache.SetSpeed(mode); err != nil {
		return err
	}
	return s.appendChange(ctx, "speed", mode.String())
}

func (s *ControlService) appendChange(ctx context.Context, attribute string, value any) error {
	return s.eventRepo.Append(ctx, models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventSettingChange,
		Description: "Amplifier " + attribute + " changed",
		Metadata: map[string]any{
			"attribute": attribute,
			"value":     value,
		},
	})
}
