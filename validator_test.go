// FILE: lixenwraith/settings/validator_test.go
package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lixenwraith/settings"
	"github.com/lixenwraith/settings/mocks"
)

func TestValidateDelegates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"port": 4567}}`), 0o644))

	t.Run("ServiceFromProcessName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockValidator(ctrl)

		loader := settings.New(
			settings.WithEnvironment(settings.MapEnvironment(nil)),
			settings.WithValidator(validator),
			settings.WithProcessName("/usr/bin/sensu-server"),
		)
		loader.Load(settings.LoadOptions{File: path})

		validator.EXPECT().
			Run(gomock.Any(), "server").
			DoAndReturn(func(tree settings.Tree, service string) []settings.Failure {
				assert.Contains(t, tree, "api")
				assert.Contains(t, tree, "checks")
				return nil
			})

		failures, err := loader.Validate()
		require.NoError(t, err)
		assert.Empty(t, failures)
	})

	t.Run("FailuresReturned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockValidator(ctrl)

		want := []settings.Failure{{Subject: "x", Message: "check command must be a string"}}
		validator.EXPECT().Run(gomock.Any(), "client").Return(want).Times(1)

		loader := settings.New(
			settings.WithEnvironment(settings.MapEnvironment(nil)),
			settings.WithValidator(validator),
			settings.WithProcessName("sensu-client"),
		)

		failures, err := loader.Validate()
		require.NoError(t, err)
		assert.Equal(t, want, failures)
	})

	t.Run("ValidateDoesNotLoad", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockValidator(ctrl)
		validator.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)

		loader := settings.New(
			settings.WithEnvironment(settings.MapEnvironment(nil)),
			settings.WithValidator(validator),
		)
		_, err := loader.Validate()
		require.NoError(t, err)

		assert.Empty(t, loader.LoadedFiles())
		assert.Empty(t, loader.Warnings())
	})
}
