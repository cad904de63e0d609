// Package core carries the explicit dependency context threaded through
// Drift's pipeline. Every component takes a *Services instead of reaching
// for a package-level logger or config (spec §9 "process-wide state"
// redesign flag): cmd/drift constructs one Services value per invocation
// and passes it down through walker, parser, detector, store, and gate.
package core

import (
	"github.com/ruizrica/drift-sub012/internal/config"
	"go.uber.org/zap"
)

// Services bundles the cross-cutting dependencies every pipeline stage
// needs: a logger, the resolved project config, and the project root.
type Services struct {
	Logger *zap.Logger
	Config *config.Config
	Root   string
}

// New builds a Services value. A nil logger is replaced with a no-op
// logger so callers never need a nil check.
func New(logger *zap.Logger, cfg *config.Config, root string) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Services{Logger: logger, Config: cfg, Root: root}
}
