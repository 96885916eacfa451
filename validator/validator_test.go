package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/settings"
)

func baseTree() settings.Tree {
	return settings.Tree{
		"checks":   settings.Tree{},
		"filters":  settings.Tree{},
		"mutators": settings.Tree{},
		"handlers": settings.Tree{},
	}
}

func failureMessages(failures []settings.Failure) []string {
	out := make([]string, len(failures))
	for i, f := range failures {
		out[i] = f.Message
	}
	return out
}

func TestRulesValidTree(t *testing.T) {
	tree := baseTree()
	tree["checks"] = settings.Tree{
		"cpu": settings.Tree{
			"command":     "check-cpu.rb",
			"interval":    json.Number("60"),
			"subscribers": []any{"linux"},
			"standalone":  false,
		},
		"ext": settings.Tree{"extension": true},
	}
	tree["filters"] = settings.Tree{
		"production": settings.Tree{"attributes": settings.Tree{"client": settings.Tree{"environment": "production"}}},
	}
	tree["mutators"] = settings.Tree{"tag": settings.Tree{"command": "tag.rb"}}
	tree["handlers"] = settings.Tree{
		"default": settings.Tree{"command": "cat"},
		"group":   settings.Tree{"type": "set", "handlers": []any{"default"}},
		"socket":  settings.Tree{"type": "tcp"},
	}
	tree["api"] = settings.Tree{"port": 4567}

	assert.Empty(t, New().Run(tree, "server"))
}

func TestRulesCategories(t *testing.T) {
	tests := []struct {
		name     string
		category string
		entries  settings.Tree
		want     []string
	}{
		{
			name:     "CheckWithoutCommand",
			category: "checks",
			entries:  settings.Tree{"cpu": settings.Tree{"interval": 60}},
			want:     []string{"check command must be a string"},
		},
		{
			name:     "CheckBadInterval",
			category: "checks",
			entries:  settings.Tree{"cpu": settings.Tree{"command": "x", "interval": json.Number("1.5")}},
			want:     []string{"check interval must be an integer greater than 0"},
		},
		{
			name:     "CheckBadSubscribers",
			category: "checks",
			entries:  settings.Tree{"cpu": settings.Tree{"command": "x", "subscribers": "linux"}},
			want:     []string{"check subscribers must be an array of strings"},
		},
		{
			name:     "CheckBadStandalone",
			category: "checks",
			entries:  settings.Tree{"cpu": settings.Tree{"command": "x", "standalone": "yes"}},
			want:     []string{"check standalone must be a boolean"},
		},
		{
			name:     "CheckNullStandalone",
			category: "checks",
			entries:  settings.Tree{"cpu": settings.Tree{"command": "x", "standalone": nil}},
			want:     []string{"check standalone must be a boolean"},
		},
		{
			name:     "DefinitionNotHash",
			category: "checks",
			entries:  settings.Tree{"cpu": "x"},
			want:     []string{"check definition cpu must be a hash"},
		},
		{
			name:     "FilterWithoutAttributes",
			category: "filters",
			entries:  settings.Tree{"f": settings.Tree{"negate": "no"}},
			want:     []string{"filter attributes must be a hash", "filter negate must be a boolean"},
		},
		{
			name:     "MutatorWithoutCommand",
			category: "mutators",
			entries:  settings.Tree{"m": settings.Tree{}},
			want:     []string{"mutator command must be a string"},
		},
		{
			name:     "HandlerUnknownType",
			category: "handlers",
			entries:  settings.Tree{"h": settings.Tree{"type": "smtp"}},
			want:     []string{"handler type must be one of pipe, tcp, udp, transport, set, extension"},
		},
		{
			name:     "PipeHandlerWithoutCommand",
			category: "handlers",
			entries:  settings.Tree{"h": settings.Tree{"type": "pipe"}},
			want:     []string{"handler command must be a string"},
		},
		{
			name:     "SetHandlerWithoutHandlers",
			category: "handlers",
			entries:  settings.Tree{"h": settings.Tree{"type": "set", "handlers": []any{1}}},
			want:     []string{"handler set handlers must be an array of strings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := baseTree()
			tree[tt.category] = tt.entries
			assert.Equal(t, tt.want, failureMessages(New().Run(tree, "server")))
		})
	}
}

func TestRulesCategoryNotHash(t *testing.T) {
	tree := baseTree()
	tree["mutators"] = []any{"x"}

	failures := New().Run(tree, "server")
	assert.Equal(t, []string{"mutators must be a hash"}, failureMessages(failures))
	assert.Equal(t, []any{"x"}, failures[0].Subject)
}

func TestRulesAPI(t *testing.T) {
	for _, port := range []any{0, 70000, "4567", json.Number("4567.5")} {
		tree := baseTree()
		tree["api"] = settings.Tree{"port": port}
		assert.Equal(t, []string{"api port must be an integer between 1 and 65535"},
			failureMessages(New().Run(tree, "api")), "port %v", port)
	}

	tree := baseTree()
	tree["api"] = "localhost"
	assert.Equal(t, []string{"api must be a hash"}, failureMessages(New().Run(tree, "api")))
}

func TestRulesClient(t *testing.T) {
	tree := baseTree()
	assert.Empty(t, New().Run(tree, "server"))
	assert.Equal(t, []string{"client must be a hash"}, failureMessages(New().Run(tree, "client")))

	tree["client"] = settings.Tree{"name": "host-1", "address": "10.0.0.1"}
	assert.Equal(t, []string{"client subscriptions must be an array of strings"},
		failureMessages(New().Run(tree, "client")))

	tree["client"] = settings.Tree{"name": "host-1", "address": "10.0.0.1", "subscriptions": []any{"linux"}}
	assert.Empty(t, New().Run(tree, "client"))
}

func TestRulesMaxFailures(t *testing.T) {
	tree := baseTree()
	tree["checks"] = settings.Tree{
		"a": settings.Tree{},
		"b": settings.Tree{},
		"c": settings.Tree{},
	}

	rules := &Rules{MaxFailures: 2}
	assert.Len(t, rules.Run(tree, "server"), 2)
	assert.Len(t, New().Run(tree, "server"), 3)
}

func TestRulesAsValidator(t *testing.T) {
	var _ settings.Validator = New()

	loader := settings.New(
		settings.WithEnvironment(settings.MapEnvironment(map[string]string{"SENSU_API_PORT": "http"})),
		settings.WithValidator(New()),
		settings.WithProcessName("sensu-api"),
	)
	loader.Load(settings.LoadOptions{})

	failures, err := loader.Validate()
	assert.NoError(t, err)
	assert.Equal(t, []string{"api port must be an integer between 1 and 65535"}, failureMessages(failures))
}
