package main

import (
	"fmt"
	"os"

	"github.com/MikeSquared-Agency/Ranker/internal/analysis"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Analysis completed
	ExitRejected = 1 // Input sheet or parameters were rejected
	ExitError    = 2 // Configuration, I/O or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if analysis.IsInputError(err) {
			os.Exit(ExitRejected)
		}
		os.Exit(ExitError)
	}
}
