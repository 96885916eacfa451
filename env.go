// FILE: lixenwraith/settings/env.go
package settings

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
)

// Environment variables read and written by the loader.
const (
	EnvRabbitMQURL   = "RABBITMQ_URL"
	EnvRedisURL      = "REDIS_URL"
	EnvRedisToGoURL  = "REDISTOGO_URL"
	EnvAPIPort       = "SENSU_API_PORT"
	EnvPort          = "PORT"
	EnvLoadedFiles   = "SENSU_CONFIG_FILES"
	LoadedFilesDelim = ":"
)

// Environment is the process-wide key/value store the loader reads its
// overrides from and exports the loaded file list to.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
	Environ() map[string]string
}

// ProcessEnvironment returns an Environment backed by the real process environment.
func ProcessEnvironment() Environment {
	return processEnvironment{}
}

type processEnvironment struct{}

func (processEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (processEnvironment) Set(key, value string) error {
	return os.Setenv(key, value)
}

func (processEnvironment) Environ() map[string]string {
	return env.ToMap(os.Environ())
}

// MapEnvironment returns an in-memory Environment seeded with vars.
// The map is copied.
func MapEnvironment(vars map[string]string) Environment {
	m := &mapEnvironment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

type mapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

func (m *mapEnvironment) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *mapEnvironment) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

func (m *mapEnvironment) Environ() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}

// envInputs are the environment overrides understood by the loader.
type envInputs struct {
	RabbitMQURL  string `env:"RABBITMQ_URL"`
	RedisURL     string `env:"REDIS_URL"`
	RedisToGoURL string `env:"REDISTOGO_URL"`
	APIPort      string `env:"SENSU_API_PORT"`
	Port         string `env:"PORT"`
}

// parseEnvInputs populates envInputs from e using the caarlos0/env library.
func parseEnvInputs(e Environment) (envInputs, error) {
	var inputs envInputs
	if err := env.ParseWithOptions(&inputs, env.Options{Environment: e.Environ()}); err != nil {
		return envInputs{}, fmt.Errorf("error getting env overrides: %w", err)
	}
	return inputs, nil
}

// coercePort converts port text to an integer the lenient way: leading
// whitespace and sign are accepted, parsing stops at the first non-digit and
// text without leading digits yields zero.
func coercePort(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i > 0 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > 1<<31 {
			break
		}
	}

	if negative {
		return -n
	}
	return n
}
