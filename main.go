package main

import (
	"fmt"
	"os"

	"fpereira/extrato-csv/cmd/batch"
	"fpereira/extrato-csv/cmd/categorize"
	"fpereira/extrato-csv/cmd/convert"
	"fpereira/extrato-csv/cmd/root"
)

func init() {
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
