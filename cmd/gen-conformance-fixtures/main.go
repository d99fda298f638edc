// Command gen-conformance-fixtures writes the fixed set of cross-
// implementation test vectors for the covenant-gated block pipeline to a
// JSON file: clean round trip, wrong key, altered block index, noise
// within and beyond the error-correction radius, and a truncated carrier.
// Any implementation of the pipeline should reproduce the same
// expect_accepted (and, where present, expect_plaintext_hex) outcome for
// every vector.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/FractalFuryan/dual-chain-geophase/crypto"
)

func main() {
	out := flag.String("out", "conformance/fixtures.json", "path to write the generated fixture vectors")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	provider, cleanup, err := crypto.LoadProvider()
	if err != nil {
		logger.Error("failed to load crypto provider", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	scenarios := BuildScenarios(provider)
	logger.Info("built conformance scenarios", "count", len(scenarios))

	if err := writeScenarios(*out, scenarios); err != nil {
		logger.Error("failed to write fixtures", "path", *out, "error", err.Error())
		os.Exit(1)
	}
	logger.Info("wrote conformance fixtures", "path", *out)
}
