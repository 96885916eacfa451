// FILE: lixenwraith/settings/validator/validator.go
package validator

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/lixenwraith/settings"
)

// Handler types accepted in handler definitions.
var handlerTypes = map[string]bool{
	"pipe":      true,
	"tcp":       true,
	"udp":       true,
	"transport": true,
	"set":       true,
	"extension": true,
}

// Rules is the reference rule set for merged settings.
type Rules struct {
	// MaxFailures stops collection after this many failures (0 = unlimited).
	MaxFailures int
}

// New returns the reference rule set.
func New() *Rules {
	return &Rules{}
}

// run collects failures for one validation pass.
type run struct {
	failures []settings.Failure
	max      int
}

func (r *run) fail(subject any, format string, args ...any) {
	if r.max > 0 && len(r.failures) >= r.max {
		return
	}
	r.failures = append(r.failures, settings.Failure{Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Run validates tree for service. It never returns an error; every problem is a Failure.
func (v *Rules) Run(tree settings.Tree, service string) []settings.Failure {
	r := &run{max: v.MaxFailures}

	for _, c := range settings.Categories() {
		entries, ok := tree[c.String()].(settings.Tree)
		if !ok {
			r.fail(tree[c.String()], "%s must be a hash", c)
			continue
		}
		for _, def := range settings.List(tree, c) {
			name := def["name"]
			if _, isMap := entries[fmt.Sprint(name)].(settings.Tree); !isMap {
				r.fail(def, "%s definition %v must be a hash", singular(c), name)
				continue
			}
			switch c {
			case settings.Checks:
				validateCheck(r, def)
			case settings.Filters:
				validateFilter(r, def)
			case settings.Mutators:
				validateMutator(r, def)
			case settings.Handlers:
				validateHandler(r, def)
			}
		}
	}

	validateAPI(r, tree)
	if service == "client" {
		validateClient(r, tree)
	}

	return r.failures
}

func singular(c settings.Category) string {
	s := c.String()
	return s[:len(s)-1]
}

func validateCheck(r *run, check settings.Definition) {
	if _, isExtension := check["extension"]; !isExtension {
		if !nonEmptyString(check["command"]) {
			r.fail(check, "check command must be a string")
		}
	}
	if interval, present := check["interval"]; present {
		if n, ok := integer(interval); !ok || n <= 0 {
			r.fail(check, "check interval must be an integer greater than 0")
		}
	}
	if subscribers, present := check["subscribers"]; present {
		if !stringList(subscribers) {
			r.fail(check, "check subscribers must be an array of strings")
		}
	}
	if standalone, present := check["standalone"]; present {
		if _, ok := standalone.(bool); !ok {
			r.fail(check, "check standalone must be a boolean")
		}
	}
}

func validateFilter(r *run, filter settings.Definition) {
	if _, ok := filter["attributes"].(settings.Tree); !ok {
		r.fail(filter, "filter attributes must be a hash")
	}
	if negate, present := filter["negate"]; present {
		if _, ok := negate.(bool); !ok {
			r.fail(filter, "filter negate must be a boolean")
		}
	}
}

func validateMutator(r *run, mutator settings.Definition) {
	if _, isExtension := mutator["extension"]; isExtension {
		return
	}
	if !nonEmptyString(mutator["command"]) {
		r.fail(mutator, "mutator command must be a string")
	}
}

func validateHandler(r *run, handler settings.Definition) {
	handlerType := "pipe"
	if t, present := handler["type"]; present {
		s, ok := t.(string)
		if !ok || !handlerTypes[s] {
			r.fail(handler, "handler type must be one of pipe, tcp, udp, transport, set, extension")
			return
		}
		handlerType = s
	}

	switch handlerType {
	case "pipe":
		if !nonEmptyString(handler["command"]) {
			r.fail(handler, "handler command must be a string")
		}
	case "set":
		if !stringList(handler["handlers"]) {
			r.fail(handler, "handler set handlers must be an array of strings")
		}
	}
}

func validateAPI(r *run, tree settings.Tree) {
	api, present := tree["api"]
	if !present {
		return
	}
	apiTree, ok := api.(settings.Tree)
	if !ok {
		r.fail(api, "api must be a hash")
		return
	}
	if port, present := apiTree["port"]; present {
		if n, ok := integer(port); !ok || n < 1 || n > 65535 {
			r.fail(apiTree, "api port must be an integer between 1 and 65535")
		}
	}
}

func validateClient(r *run, tree settings.Tree) {
	client, ok := tree["client"].(settings.Tree)
	if !ok {
		r.fail(tree["client"], "client must be a hash")
		return
	}
	if !nonEmptyString(client["name"]) {
		r.fail(client, "client name must be a string")
	}
	if !nonEmptyString(client["address"]) {
		r.fail(client, "client address must be a string")
	}
	if !stringList(client["subscriptions"]) {
		r.fail(client, "client subscriptions must be an array of strings")
	}
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func stringList(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if _, isString := item.(string); !isString {
			return false
		}
	}
	return true
}

// integer accepts any whole number regardless of how it was decoded.
func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
