package main

import (
	"fmt"
	"os"

	"github.com/abhisek/kanaz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kanaz:", err)
		os.Exit(1)
	}
}
