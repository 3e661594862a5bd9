package main

import (
	"fmt"
	"os"

	"github.com/danmuck/kicadctl/internal/logging"
)

func main() {
	a := &app{configureLogger: logging.ConfigureRuntime}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kicadctl: %v\n", err)
		os.Exit(1)
	}
}
