// FILE: lixenwraith/settings/decode.go
package settings

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DecodeDefinition decodes one definition, including its name attribute, into target.
// target must be a non-nil pointer. Fields are matched by their json tags.
func DecodeDefinition(tree Tree, c Category, name any, target any) error {
	def, ok := Find(tree, c, name)
	if !ok {
		return fmt.Errorf("%w: %s %v", ErrDefinitionNotFound, c, name)
	}
	return decodeInto(def, target)
}

// DecodeCategory decodes every definition of a category into a slice pointed to by target.
func DecodeCategory(tree Tree, c Category, target any) error {
	defs := List(tree, c)
	items := make([]any, len(defs))
	for i, d := range defs {
		items[i] = d
	}
	return decodeInto(items, target)
}

// decodeInto is the single decoding path for definitions.
func decodeInto(input any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       getDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	return nil
}

// getDecodeHook returns the composite decode hook for definition fields.
func getDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		jsonNumberHookFunc(),
		stringToURLHookFunc(),
		secondsToDurationHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(url.URL{}) && t != reflect.TypeOf(&url.URL{}) {
			return data, nil
		}

		str, ok := data.(string)
		if !ok {
			return data, nil
		}
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}

		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}

		if t == reflect.TypeOf(url.URL{}) {
			return *u, nil
		}
		return u, nil
	}
}

// secondsToDurationHookFunc reads numbers as seconds when the target is a
// time.Duration, matching how intervals and timeouts are written in definitions.
func secondsToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		if _, isString := data.(string); isString {
			return data, nil
		}
		seconds, ok := toNumber(data)
		if !ok {
			return data, nil
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
}

// jsonNumberHookFunc turns json.Number into int64 or float64 so the string
// based hooks never see it.
func jsonNumberHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if n, ok := data.(json.Number); ok {
			return plainValue(n, false), nil
		}
		return data, nil
	}
}
