// FILE: lixenwraith/settings/loader.go
package settings

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// FileResult reports the outcome of loading one file.
// Loaded is false when the file was skipped; Warnings holds what the attempt recorded.
type FileResult struct {
	Path     string
	Loaded   bool
	Warnings []Warning
}

// LoadOptions names the file and directory Load reads after the environment.
// Empty fields are skipped.
type LoadOptions struct {
	File      string
	Directory string
}

// Loader owns a settings tree and the record of how it was built.
// All methods are safe for concurrent use; they serialize on one mutex.
type Loader struct {
	mu sync.Mutex

	tree        Tree
	loadedFiles []string
	warnings    warningLog

	indifferent bool
	view        *View

	env         Environment
	extensions  []string
	validator   Validator
	processName string
	logger      zerolog.Logger
	metrics     *Metrics
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvironment sets the environment overrides are read from and exported to.
func WithEnvironment(env Environment) Option {
	return func(l *Loader) { l.env = env }
}

// WithExtensions sets the file extensions discovered in directories.
func WithExtensions(extensions ...string) Option {
	return func(l *Loader) { l.extensions = extensions }
}

// WithValidator sets the validator used by Validate.
func WithValidator(v Validator) Option {
	return func(l *Loader) { l.validator = v }
}

// WithProcessName overrides the invocation name used to derive the service.
func WithProcessName(name string) Option {
	return func(l *Loader) { l.processName = name }
}

// WithLogger mirrors warnings and load activity to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithMetrics records loader counters on m.
func WithMetrics(m *Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// New creates a Loader holding the four empty categories.
func New(opts ...Option) *Loader {
	l := &Loader{
		tree:        defaultTree(),
		env:         ProcessEnvironment(),
		extensions:  []string{DefaultExtension},
		processName: os.Args[0],
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.warnings.logger = l.logger
	l.warnings.metrics = l.metrics
	return l
}

// Load reads the environment, the optional file and the optional directory,
// exports the loaded file list and returns the indifferent view of the result.
func (l *Loader) Load(opts LoadOptions) *View {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadEnvironment()
	if opts.File != "" {
		l.loadFile(opts.File)
	}
	if opts.Directory != "" {
		l.loadDirectory(opts.Directory)
	}
	l.exportLoadedFiles()

	return l.indifferentView()
}

// LoadEnvironment merges the broker URL, store URL and API port overrides.
func (l *Loader) LoadEnvironment() []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := len(l.warnings.records)
	l.loadEnvironment()
	return l.warnings.since(start)
}

func (l *Loader) loadEnvironment() {
	inputs, err := parseEnvInputs(l.env)
	if err != nil {
		// Only string fields are parsed, so this is an environment provider failure
		l.logger.Error().Err(err).Msg("reading environment overrides")
		return
	}

	if inputs.RabbitMQURL != "" {
		l.tree = Merge(l.tree, Tree{"rabbitmq": inputs.RabbitMQURL})
		l.warnings.add(inputs.RabbitMQURL, MsgEnvRabbitMQ)
		l.countOverride(EnvRabbitMQURL)
	}

	if inputs.RedisURL == "" && inputs.RedisToGoURL != "" {
		inputs.RedisURL = inputs.RedisToGoURL
		l.setEnv(EnvRedisURL, inputs.RedisURL)
	}
	if inputs.RedisURL != "" {
		l.tree = Merge(l.tree, Tree{"redis": inputs.RedisURL})
		l.warnings.add(inputs.RedisURL, MsgEnvRedis)
		l.countOverride(EnvRedisURL)
	}

	if inputs.APIPort == "" && inputs.Port != "" {
		inputs.APIPort = inputs.Port
		l.setEnv(EnvAPIPort, inputs.APIPort)
	}
	if inputs.APIPort != "" {
		override := Tree{}
		setPath(override, "api.port", coercePort(inputs.APIPort))
		l.tree = Merge(l.tree, override)
		l.warnings.add(Clone(l.tree["api"]), MsgEnvAPIPort)
		l.countOverride(EnvAPIPort)
	}

	l.indifferent = false
}

// LoadFile merges one configuration file into the tree. Missing, unreadable
// and malformed files are skipped with warnings and never returned as errors.
func (l *Loader) LoadFile(path string) FileResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loadFile(path)
}

func (l *Loader) loadFile(path string) FileResult {
	start := len(l.warnings.records)
	result := FileResult{Path: path}

	data, err := readConfigFile(path)
	if err != nil {
		l.logger.Debug().Err(err).Str("file", path).Msg("config file unreadable")
		l.warnings.add(Tree{"file": path}, MsgFileUnreadable)
		l.warnings.add(Tree{"file": path}, MsgFileIgnored)
		l.countIgnored(reasonUnreadable)
		result.Warnings = l.warnings.since(start)
		return result
	}

	l.warnings.add(Tree{"file": path}, MsgFileLoading)

	format := detectFileFormat(path)
	parsed, err := parseDocument(data, format)
	if err != nil {
		l.warnings.add(Tree{"file": path, "error": err.Error()}, MsgFileInvalid+" "+format)
		l.warnings.add(Tree{"file": path}, MsgFileIgnored)
		l.countIgnored(reasonInvalid)
		result.Warnings = l.warnings.since(start)
		return result
	}

	merged := l.ensureCategories(Merge(l.tree, parsed), path)
	if len(l.loadedFiles) > 0 {
		changes := Diff(l.tree, merged)
		l.warnings.add(Tree{"file": path, "changes": changes}, MsgFileChanges)
	}

	l.tree = merged
	l.indifferent = false
	l.loadedFiles = append(l.loadedFiles, path)
	if l.metrics != nil {
		l.metrics.filesLoaded.Inc()
	}
	l.logger.Debug().Str("file", path).Str("format", format).Msg("config file loaded")

	result.Loaded = true
	result.Warnings = l.warnings.since(start)
	return result
}

// readConfigFile returns the contents of a readable regular file.
func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// ensureCategories replaces any category a file turned into a non-mapping
// with an empty mapping and records a warning.
func (l *Loader) ensureCategories(tree Tree, path string) Tree {
	for _, c := range Categories() {
		key := c.key()
		if _, ok := tree[key].(Tree); ok {
			continue
		}
		l.warnings.add(Tree{"file": path, "category": key, "value": tree[key]}, MsgCategoryNotMapping)
		tree[key] = Tree{}
	}
	return tree
}

// LoadDirectory loads every matching file found below path, in sorted order.
func (l *Loader) LoadDirectory(path string) []FileResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loadDirectory(path)
}

func (l *Loader) loadDirectory(path string) []FileResult {
	l.warnings.add(Tree{"directory": path}, MsgDirectoryLoading)

	dir := normalizeDirectory(path)
	var results []FileResult
	for _, file := range discoverFiles(dir, l.extensions) {
		results = append(results, l.loadFile(file))
	}
	return results
}

// ExportLoadedFiles writes the loaded file list, colon separated, to SENSU_CONFIG_FILES.
func (l *Loader) ExportLoadedFiles() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.exportLoadedFiles()
}

func (l *Loader) exportLoadedFiles() {
	l.setEnv(EnvLoadedFiles, strings.Join(l.loadedFiles, LoadedFilesDelim))
}

func (l *Loader) setEnv(key, value string) {
	if err := l.env.Set(key, value); err != nil {
		l.logger.Error().Err(err).Str("variable", key).Msg("exporting environment variable")
	}
}

// Validate runs the validator against the current tree for the service named
// by the process invocation name.
func (l *Loader) Validate() ([]Failure, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.validator == nil {
		return nil, ErrNoValidator
	}

	service := ServiceName(l.processName)
	failures := l.validator.Run(cloneTree(l.tree), service)
	l.logger.Debug().Str("service", service).Int("failures", len(failures)).Msg("settings validated")
	return failures, nil
}

// indifferentView wraps the tree once per replacement.
func (l *Loader) indifferentView() *View {
	if !l.indifferent || l.view == nil {
		l.view = newView(l.tree)
		l.indifferent = true
	}
	return l.view
}

// View returns the indifferent view of the current tree.
func (l *Loader) View() *View {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.indifferentView()
}

// Get looks up a top-level key in string or Symbol form.
func (l *Loader) Get(key any) (any, bool) {
	return l.View().Get(key)
}

// Lookup follows a chain of keys from the top of the tree.
func (l *Loader) Lookup(keys ...any) (any, bool) {
	return l.View().Lookup(keys...)
}

// Indifferent reports whether the cached view matches the current tree.
func (l *Loader) Indifferent() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.indifferent
}

// Tree returns a deep copy of the current tree.
func (l *Loader) Tree() Tree {
	l.mu.Lock()
	defer l.mu.Unlock()

	return cloneTree(l.tree)
}

// Warnings returns a copy of every warning recorded so far.
func (l *Loader) Warnings() []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.warnings.snapshot()
}

// LoadedFiles returns the files merged so far, in load order.
func (l *Loader) LoadedFiles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.loadedFiles))
	copy(out, l.loadedFiles)
	return out
}

// List returns the definitions of a category.
func (l *Loader) List(c Category) []Definition {
	l.mu.Lock()
	defer l.mu.Unlock()

	return List(l.tree, c)
}

// Exists reports whether a category holds a definition called name.
func (l *Loader) Exists(c Category, name any) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Exists(l.tree, c, name)
}

// Definition returns one definition of a category.
func (l *Loader) Definition(c Category, name any) (Definition, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Find(l.tree, c, name)
}

// Decode decodes one definition into target.
func (l *Loader) Decode(c Category, name any, target any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return DecodeDefinition(l.tree, c, name, target)
}

// Checks returns the check definitions.
func (l *Loader) Checks() []Definition { return l.List(Checks) }

// Filters returns the filter definitions.
func (l *Loader) Filters() []Definition { return l.List(Filters) }

// Mutators returns the mutator definitions.
func (l *Loader) Mutators() []Definition { return l.List(Mutators) }

// Handlers returns the handler definitions.
func (l *Loader) Handlers() []Definition { return l.List(Handlers) }

// CheckExists reports whether a check is defined.
func (l *Loader) CheckExists(name any) bool { return l.Exists(Checks, name) }

// FilterExists reports whether a filter is defined.
func (l *Loader) FilterExists(name any) bool { return l.Exists(Filters, name) }

// MutatorExists reports whether a mutator is defined.
func (l *Loader) MutatorExists(name any) bool { return l.Exists(Mutators, name) }

// HandlerExists reports whether a handler is defined.
func (l *Loader) HandlerExists(name any) bool { return l.Exists(Handlers, name) }

func (l *Loader) countOverride(variable string) {
	if l.metrics != nil {
		l.metrics.envOverrides.WithLabelValues(variable).Inc()
	}
}

func (l *Loader) countIgnored(reason string) {
	if l.metrics != nil {
		l.metrics.filesIgnored.WithLabelValues(reason).Inc()
	}
}

// IsInvalidFile reports whether a warning records a parse failure.
func IsInvalidFile(w Warning) bool {
	return strings.HasPrefix(w.Message, MsgFileInvalid)
}
