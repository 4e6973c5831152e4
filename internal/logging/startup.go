package logging

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Section names in the startup event.
const (
	sectionUpstreams = "upstreams"
	sectionSSM       = "ssmParams"
	sectionFeatures  = "features"
	sectionConfig    = "config"
)

// StartupLogger builds the one "Startup complete" event a binary logs after
// initialization. Secrets appear only as the place they were read from.
type StartupLogger struct {
	name     string
	build    map[string]string
	sections map[string]map[string]any
	initTook time.Duration
}

// NewStartupLogger starts the event for the named binary.
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:     name,
		build:    map[string]string{},
		sections: map[string]map[string]any{},
	}
}

func (s *StartupLogger) set(section, key string, value any) *StartupLogger {
	m, ok := s.sections[section]
	if !ok {
		m = map[string]any{}
		s.sections[section] = m
	}
	m[key] = value
	return s
}

// CommitHash records the git commit set through -ldflags.
func (s *StartupLogger) CommitHash(hash string) *StartupLogger {
	if hash != "" {
		s.build["commitHash"] = hash
	}
	return s
}

// BuildTime records the build timestamp set through -ldflags.
func (s *StartupLogger) BuildTime(t string) *StartupLogger {
	if t != "" {
		s.build["buildTime"] = t
	}
	return s
}

// Upstream records a remote endpoint the process calls.
func (s *StartupLogger) Upstream(label, url string) *StartupLogger {
	return s.set(sectionUpstreams, label, url)
}

// SSMParam records the path of a parameter read at startup, never its value.
func (s *StartupLogger) SSMParam(label, path string) *StartupLogger {
	return s.set(sectionSSM, label, path)
}

// Feature records an on/off switch such as "gzip" or "keyFromEnv".
func (s *StartupLogger) Feature(name string, enabled bool) *StartupLogger {
	return s.set(sectionFeatures, name, enabled)
}

// Config records a non-secret setting.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	return s.set(sectionConfig, key, value)
}

// InitDuration records how long initialization took.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initTook = d
	return s
}

// EnvOrDefault returns the variable's value, or def when it is empty.
func EnvOrDefault(envVar, def string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return def
}

// Log writes the event at info level.
func (s *StartupLogger) Log() {
	process := zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Str("logLevel", os.Getenv(LevelEnvVar))
	for k, v := range s.build {
		process.Str(k, v)
	}
	if fn := os.Getenv("AWS_LAMBDA_FUNCTION_NAME"); fn != "" {
		process.
			Str("functionName", fn).
			Str("version", os.Getenv("AWS_LAMBDA_FUNCTION_VERSION")).
			Str("region", os.Getenv("AWS_REGION")).
			Str("memoryMB", os.Getenv("AWS_LAMBDA_FUNCTION_MEMORY_SIZE"))
	}

	evt := log.Info().Dict("process", process)
	for _, name := range []string{sectionUpstreams, sectionSSM, sectionFeatures, sectionConfig} {
		if fields, ok := s.sections[name]; ok {
			evt.Dict(name, zerolog.Dict().Fields(fields))
		}
	}
	if s.initTook > 0 {
		evt.Dur("initDuration", s.initTook)
	}
	evt.Msg("Startup complete")
}
