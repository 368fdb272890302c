package models

import "time"

// HealthState is the coarse backend status.
type HealthState string

const (
	HealthUp   HealthState = "UP"
	HealthDown HealthState = "DOWN"
)

// HealthDetails mirrors the optional details block of GET /api/health.
type HealthDetails struct {
	Database  string `json:"database,omitempty"`
	DiskSpace string `json:"diskSpace,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
	Version   string `json:"version,omitempty"`
}

// HealthStatus is the outcome of one health probe. A probe never fails;
// errors are reported as HealthDown.
type HealthStatus struct {
	Status       HealthState    `json:"status"`
	Timestamp    time.Time      `json:"timestamp"`
	ResponseTime time.Duration  `json:"responseTime"`
	Details      *HealthDetails `json:"details,omitempty"`
}

func (h HealthStatus) Up() bool {
	return h.Status == HealthUp
}
