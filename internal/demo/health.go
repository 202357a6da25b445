package demo

import "time"

// HealthController serves /health
type HealthController struct {
	started time.Time
}

// Health reports liveness and uptime
func (h *HealthController) Health() map[string]any {
	return map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}
}

// Ping answers with pong
func (h *HealthController) Ping() string {
	return "pong"
}
