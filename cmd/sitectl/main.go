// Command sitectl is the operator tool for the site content store: it lists
// sections, materializes defaults, reads and writes payloads, copies
// documents between backends and issues development admin tokens.
package main

import (
	"os"

	"github.com/globalsolutions/website/backend/pkg/logger"
)

func main() {
	logger.SetOutput(os.Stderr)
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
