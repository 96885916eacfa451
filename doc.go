// File: lixenwraith/settings/doc.go

// Package settings loads and merges hierarchical service configuration from
// environment variables, a configuration file and a directory of configuration
// files into one queryable tree.
//
// Features:
//   - Deep merge: mappings merge recursively, sequences concatenate without duplicates
//   - Deep diff of every file after the first, recorded as a warning
//   - Indifferent key access: string and Symbol keys address the same entry
//   - Category accessors for checks, filters, mutators and handlers
//   - Warning log mirrored to zerolog, counters exported through prometheus
//   - JSON files by default, TOML and YAML by extension
//   - Pluggable Validator, with a reference rule set in package validator
//
// Quick Start:
//
//	loader := settings.New()
//	view := loader.Load(settings.LoadOptions{
//	    File:      "/etc/sensu/config.json",
//	    Directory: "/etc/sensu/conf.d",
//	})
//
//	port, _ := view.Lookup(settings.Symbol("api"), "port")
//	for _, check := range loader.Checks() {
//	    fmt.Println(check["name"], check["command"])
//	}
//
// Load order:
//  1. RABBITMQ_URL, REDIS_URL (or REDISTOGO_URL) and SENSU_API_PORT (or PORT)
//  2. the configuration file
//  3. every matching file below the configuration directory, in sorted order
//
// Later sources override earlier ones. The paths of all merged files are
// exported, colon separated, to SENSU_CONFIG_FILES.
//
// Missing, unreadable or malformed files never fail a load: they are skipped
// and recorded in Warnings.
//
// Builder:
//
//	loader, view, err := settings.NewBuilder().
//	    WithDirectory("/etc/sensu/conf.d").
//	    WithExtensions(".json", ".yaml").
//	    WithValidator(validator.New()).
//	    WithMetrics(prometheus.DefaultRegisterer).
//	    BuildAndLoad()
//
// Thread Safety:
//
// A Loader serializes all operations on one mutex. The *View returned by Load
// and View is read-only and shared until the next load. Trees, definitions and
// slices returned by the other accessors are copies.
package settings
