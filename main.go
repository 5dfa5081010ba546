package main

import (
	"fmt"
	"os"

	"fjacquet/spendlens/cmd/add"
	"fjacquet/spendlens/cmd/ask"
	"fjacquet/spendlens/cmd/categories"
	"fjacquet/spendlens/cmd/clearall"
	configcmd "fjacquet/spendlens/cmd/config"
	"fjacquet/spendlens/cmd/dashboard"
	"fjacquet/spendlens/cmd/export"
	"fjacquet/spendlens/cmd/list"
	"fjacquet/spendlens/cmd/parse"
	"fjacquet/spendlens/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(clearall.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(configcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
