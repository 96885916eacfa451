// Package validator provides the reference rule set for merged settings trees.
//
// Rules:
//   - checks, filters, mutators and handlers are hashes of hashes
//   - checks need a command (unless they name an extension); interval, when
//     present, is a positive integer; subscribers is an array of strings;
//     standalone is a boolean
//   - filters need an attributes hash; negate is a boolean
//   - mutators need a command (unless they name an extension)
//   - handler type is one of pipe, tcp, udp, transport, set, extension
//     (pipe when omitted); pipe handlers need a command, set handlers a
//     handlers array
//   - api.port, when present, is an integer between 1 and 65535
//   - the client service needs a client hash with name, address and subscriptions
//
// Usage:
//
//	loader := settings.New(settings.WithValidator(validator.New()))
//	loader.Load(settings.LoadOptions{Directory: "/etc/sensu/conf.d"})
//	failures, _ := loader.Validate()
package validator
