package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// CouplingMode selects the amplifier input coupling. Wire value 0 is AC, 1 is DC.
type CouplingMode int

const (
	CouplingAC CouplingMode = iota
	CouplingDC
)

func (m CouplingMode) String() string {
	if m == CouplingDC {
		return "DC"
	}
	return "AC"
}

func (m CouplingMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *CouplingMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseCoupling(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseCoupling accepts "AC" or "DC" (case-insensitive).
func ParseCoupling(s string) (CouplingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AC":
		return CouplingAC, nil
	case "DC":
		return CouplingDC, nil
	default:
		return 0, fmt.Errorf("invalid coupling %q: must be AC or DC", s)
	}
}

// SpeedMode selects the amplifier bandwidth/noise trade-off. Wire value 0 is High, 1 is Low.
type SpeedMode int

const (
	SpeedHigh SpeedMode = iota
	SpeedLow
)

func (m SpeedMode) String() string {
	if m == SpeedLow {
		return "LOW"
	}
	return "HIGH"
}

func (m SpeedMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *SpeedMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseSpeed(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseSpeed accepts "HIGH" or "LOW" (case-insensitive).
func ParseSpeed(s string) (SpeedMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return SpeedHigh, nil
	case "LOW":
		return SpeedLow, nil
	default:
		return 0, fmt.Errorf("invalid speed %q: must be HIGH or LOW", s)
	}
}

// HealthState is the coarse classification derived from the overload bit.
type HealthState string

const (
	HealthNormal   HealthState = "NORMAL"
	HealthOverload HealthState = "OVERLOAD"
)

// LifecycleState tracks the externally visible device state:
// INITIALIZING until the first successful contact, then OPERATIONAL,
// flipping to FAULTED while the overload bit is set.
type LifecycleState string

const (
	StateInitializing LifecycleState = "INITIALIZING"
	StateOperational  LifecycleState = "OPERATIONAL"
	StateFaulted      LifecycleState = "FAULTED"
)

// StatusSnapshot is one decoded STATUS? reply. All four fields come from
// the same reply; they are never updated piecemeal.
type StatusSnapshot struct {
	Gain        int          `json:"gain"` // 0..7
	Coupling    CouplingMode `json:"coupling"`
	Speed       SpeedMode    `json:"speed"`
	Overload    bool         `json:"overload"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}

// Health derives the health classification from the overload bit.
func (s StatusSnapshot) Health() HealthState {
	if s.Overload {
		return HealthOverload
	}
	return HealthNormal
}

// Amplification is the transimpedance in V/A: 10^(base+gain) with
// base 5 in low-speed mode and base 3 in high-speed mode. It is always
// computed from the snapshot, never cached on its own.
func (s StatusSnapshot) Amplification() float64 {
	base := 3.0
	if s.Speed == SpeedLow {
		base = 5.0
	}
	return math.Pow(10, base+float64(s.Gain))
}

// ClimateSnapshot is one decoded TEMP? reply.
type ClimateSnapshot struct {
	TemperatureC float64   `json:"temperature_c"` // °C
	HumidityPct  float64   `json:"humidity_pct"`  // %
	RefreshedAt  time.Time `json:"refreshed_at"`
}

// AmplifierState is the composite view served to API and WebSocket clients.
type AmplifierState struct {
	Gain            int            `json:"gain"`
	Coupling        CouplingMode   `json:"coupling"`
	Speed           SpeedMode      `json:"speed"`
	Overload        bool           `json:"overload"`
	AmplificationVA float64        `json:"amplification_va"` // V/A
	TemperatureC    float64        `json:"temperature_c"`    // °C
	HumidityPct     float64        `json:"humidity_pct"`     // %
	Health          HealthState    `json:"health"`
	State           LifecycleState `json:"state"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
