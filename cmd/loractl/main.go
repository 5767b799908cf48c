package main

import (
	"fmt"
	"os"

	"lorad/internal/loractl"
)

func main() {
	if err := loractl.BuildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
