package main

import (
	"fmt"
	"os"

	"fjacquet/mocktest/cmd/batch"
	"fjacquet/mocktest/cmd/extract"
	"fjacquet/mocktest/cmd/importpdf"
	"fjacquet/mocktest/cmd/leaderboard"
	"fjacquet/mocktest/cmd/root"
	"fjacquet/mocktest/cmd/serve"
	"fjacquet/mocktest/cmd/tests"
	"fjacquet/mocktest/cmd/useradd"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(importpdf.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(tests.Cmd)
	root.Cmd.AddCommand(leaderboard.Cmd)
	root.Cmd.AddCommand(useradd.Cmd)
}

func main() {
	err := root.Cmd.Execute()
	if cerr := root.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
