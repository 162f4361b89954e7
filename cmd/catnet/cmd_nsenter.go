package main

import (
	"fmt"
	"os"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
)

// cmdNsenter only returns on failure: on success the process becomes bash.
func cmdNsenter(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Internal error: missing arguments for nsenter")
		os.Exit(1)
	}
	if err := domain.Nsenter(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
