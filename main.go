package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/barisgit/ngx-electron/cmd"
)

var version = "0.1.0"

func main() {
	os.Exit(cmd.Execute(cmd.RootCmd(version), color.Error))
}
