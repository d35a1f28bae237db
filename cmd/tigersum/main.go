package main

import (
	"fmt"
	"os"

	"github.com/direct-connect/go-tiger/cmd/tigersum/cmd"
)

func main() {
	err := cmd.Root.Execute()
	cmd.SyncLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
