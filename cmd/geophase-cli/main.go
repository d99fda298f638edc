// Command geophase-cli is a JSON-in/JSON-out driver over the pipeline,
// canonical, and keyschedule packages: one request object on stdin, one
// response object on stdout, per invocation.
package main

import (
	"log/slog"
	"os"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	provider, cleanup, err := crypto.LoadProvider()
	if err != nil {
		logger.Error("failed to load crypto provider", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	runFromStdin(logger, provider, os.Stdin, os.Stdout)
}
