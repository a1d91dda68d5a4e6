package main

import (
	"io"
	"os"
)

// readInput reads path, or the root command's input (stdin unless replaced
// with rootCmd.SetIn) when path is "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(rootCmd.InOrStdin())
	}
	return os.ReadFile(path)
}
