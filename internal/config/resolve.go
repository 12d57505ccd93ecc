package config

import "github.com/verte-zerg/lingotype/internal/model"

// Resolve layers the config file and then the environment over defaults.
// CLI flags are applied on top by the caller.
func Resolve(defaults model.Config, file FileConfig, e EnvConfig) model.Config {
	cfg := defaults
	applyString(&cfg.Lang, file.Practice.Lang)
	applyString(&cfg.File, file.Practice.File)
	applyString(&cfg.LogLevel, file.Log.Level)
	applyString(&cfg.LogFile, file.Log.File)
	applyString(&cfg.DBPath, file.Store.Path)

	applyEnv(&cfg.Lang, e.Lang)
	applyEnv(&cfg.File, e.File)
	applyEnv(&cfg.LogLevel, e.LogLevel)
	applyEnv(&cfg.LogFile, e.LogFile)
	applyEnv(&cfg.DBPath, e.DBPath)
	return cfg
}

func applyString(target, value *string) {
	if value == nil {
		return
	}
	*target = *value
}

func applyEnv(target *string, value string) {
	if value == "" {
		return
	}
	*target = value
}
