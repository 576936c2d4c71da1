package main

import (
	"os"

	"github.com/xufanglin/rimmich/cmd"
	"github.com/xufanglin/rimmich/tool"
)

func main() {
	if err := cmd.NewCLI().Execute(); err != nil {
		tool.DefaultLogger.Error(err)
		os.Exit(1)
	}
}
