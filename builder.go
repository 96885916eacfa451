// File: lixenwraith/settings/builder.go
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Builder provides a fluent interface for building a Loader
type Builder struct {
	opts       []Option
	load       LoadOptions
	registerer prometheus.Registerer
	metrics    bool
	err        error
}

// NewBuilder creates a new loader builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithEnvironment sets the environment provider
func (b *Builder) WithEnvironment(env Environment) *Builder {
	if env == nil {
		b.err = errors.Join(b.err, fmt.Errorf("environment must not be nil"))
		return b
	}
	b.opts = append(b.opts, WithEnvironment(env))
	return b
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.load.File = path
	return b
}

// WithDirectory sets the configuration directory path
func (b *Builder) WithDirectory(path string) *Builder {
	b.load.Directory = path
	return b
}

// WithExtensions sets the extensions discovered in the configuration directory
func (b *Builder) WithExtensions(extensions ...string) *Builder {
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			b.err = errors.Join(b.err, fmt.Errorf("extension %q must start with a dot", ext))
			return b
		}
	}
	b.opts = append(b.opts, WithExtensions(extensions...))
	return b
}

// WithValidator sets the validator used by Validate
func (b *Builder) WithValidator(v Validator) *Builder {
	if v != nil {
		b.opts = append(b.opts, WithValidator(v))
	}
	return b
}

// WithProcessName overrides the invocation name the service is derived from
func (b *Builder) WithProcessName(name string) *Builder {
	b.opts = append(b.opts, WithProcessName(name))
	return b
}

// WithLogger sets the logger warnings are mirrored to
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(logger))
	return b
}

// WithMetrics enables loader counters registered on reg (nil keeps them private)
func (b *Builder) WithMetrics(reg prometheus.Registerer) *Builder {
	b.metrics = true
	b.registerer = reg
	return b
}

// Build creates the Loader with all specified options without loading anything
func (b *Builder) Build() (*Loader, error) {
	if b.err != nil {
		return nil, fmt.Errorf("invalid loader configuration: %w", b.err)
	}

	opts := b.opts
	if b.metrics {
		m, err := NewMetrics(b.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, WithMetrics(m))
	}

	return New(opts...), nil
}

// BuildAndLoad builds the Loader and runs Load with the configured file and directory
func (b *Builder) BuildAndLoad() (*Loader, *View, error) {
	l, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return l, l.Load(b.load), nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Loader {
	l, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("settings build failed: %v", err))
	}
	return l
}
