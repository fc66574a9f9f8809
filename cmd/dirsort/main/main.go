package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dirsort/cmd/dirsort"
	"github.com/arthur-debert/dirsort/pkg/style"
)

func main() {
	rootCmd := dirsort.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.FailedStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
