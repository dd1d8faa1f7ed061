package state

import (
	"time"

	"fcss/config"
	"fcss/engine"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// EngineOptions converts engine section of configuration. Nil configuration
// gives engine defaults.
func EngineOptions(cfg *config.Config) engine.Options {
	if cfg == nil {
		return engine.Options{}
	}
	return engine.Options{
		Mode:           cfg.Engine.Mode,
		HashPrefix:     cfg.Engine.HashPrefix,
		RTLPrefix:      cfg.Engine.RTLPrefix,
		VariablePrefix: cfg.Engine.VariablePrefix,
	}
}
