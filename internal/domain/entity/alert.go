package entity

import "time"

// AlertLevel is the severity of a transient user-facing message.
type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertDanger  AlertLevel = "danger"
	AlertWarning AlertLevel = "warning"
	AlertInfo    AlertLevel = "info"
)

// Alert is a fire-and-forget notification consumed by a banner view.
type Alert struct {
	ID      string
	Level   AlertLevel
	Message string
	Time    time.Time
}
