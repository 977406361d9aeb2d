package main

import (
	"errors"
	"fmt"
	"os"

	"taskboard/app/commands"
)

func main() {
	if err := commands.NewApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		if !errors.Is(err, commands.ErrQuiet) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
