package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/settings"
	"github.com/lixenwraith/settings/internal/cli"
)

func main() {
	root := cli.NewRoot(settings.ProcessEnvironment())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "settings:", err)
		os.Exit(1)
	}
}
