// FILE: lixenwraith/settings/validator.go
package settings

import (
	"path/filepath"
	"strings"
)

//go:generate mockgen -destination=mocks/validator.go -package=mocks github.com/lixenwraith/settings Validator

// Failure describes one validation problem.
type Failure struct {
	Subject any    `json:"subject"`
	Message string `json:"message"`
}

// Validator checks a merged settings tree for the named service.
// An empty result means the tree is valid.
type Validator interface {
	Run(tree Tree, service string) []Failure
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(tree Tree, service string) []Failure

// Run calls f(tree, service).
func (f ValidatorFunc) Run(tree Tree, service string) []Failure {
	return f(tree, service)
}

// ServiceName derives the service identifier from a process invocation name:
// the token after the last hyphen of the base name ("/usr/bin/sensu-server" -> "server").
func ServiceName(processName string) string {
	base := filepath.Base(processName)
	if i := strings.LastIndex(base, "-"); i >= 0 {
		return base[i+1:]
	}
	return base
}
