// FILE: lixenwraith/settings/errors.go
package settings

import "errors"

var (
	// ErrUnknownCategory is returned for a category name outside checks, filters, mutators and handlers.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrDefinitionNotFound is returned when a named definition does not exist in its category.
	ErrDefinitionNotFound = errors.New("definition not found")
	// ErrNoValidator is returned by Validate when the loader has no validator.
	ErrNoValidator = errors.New("no validator configured")
	// ErrUnsupportedFormat is returned for documents whose format cannot be determined.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrNotMapping is returned when a document's top level is not a mapping.
	ErrNotMapping = errors.New("config document must be a mapping")
)
