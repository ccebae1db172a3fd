package service

import "time"

// LogFilter narrows the device history by time range and event type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "CONNECT", "SETTING_CHANGE", "FAULT", "FAULT_CLEARED", "ERROR"
}
