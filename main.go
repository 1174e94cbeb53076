package main

import (
	"fmt"
	"os"

	"github.com/sadopc/upfocus/internal/cli"
	"github.com/sadopc/upfocus/internal/tui"
)

func main() {
	root := cli.NewRootCmd(cli.OpenEnv, func(env *cli.Env) error {
		return tui.Run(env.Store, env.Log)
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
