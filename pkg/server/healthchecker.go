package server

import (
	"context"
	"log/slog"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// Pinger is any dependency that can report liveness.
type Pinger func(ctx context.Context) error

// PingHealthChecker reports healthy only when every registered
// dependency answers its ping.
type PingHealthChecker struct {
	pingers map[string]Pinger
}

func NewPingHealthChecker() *PingHealthChecker {
	return &PingHealthChecker{pingers: make(map[string]Pinger)}
}

func (hc *PingHealthChecker) Register(name string, p Pinger) *PingHealthChecker {
	hc.pingers[name] = p
	return hc
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	for name, ping := range hc.pingers {
		if err := ping(ctx); err != nil {
			slog.Warn("health check failed", "dependency", name, "error", err)
			return false
		}
	}
	return true
}
