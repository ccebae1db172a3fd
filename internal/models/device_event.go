package models

import "time"

// Event types recorded for the amplifier.
const (
	EventConnect       = "CONNECT"
	EventSettingChange = "SETTING_CHANGE"
	EventFault         = "FAULT"
	EventFaultCleared  = "FAULT_CLEARED"
	EventError         = "ERROR"
)

// DeviceEvent is a single entry in the device history log.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CONNECT | SETTING_CHANGE | FAULT | FAULT_CLEARED | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
