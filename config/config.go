// Package config loads the small set of environment knobs the
// cmd/ecsim-demo harness and library package need: where the part
// library lives and an author name the demo reports. An
// optional .env file in the working directory is read first, then
// overridden by real environment variables, with hard-coded defaults
// when neither is set.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the harness's runtime settings.
type Config struct {
	// LibraryDir is where library.Library reads and writes .sim
	// snapshots.
	LibraryDir string
	// Author names who built the parts; cmd/ecsim-demo prints it with
	// its results. Saved snapshots do not record it.
	Author string
}

// Load reads an optional .env file (silently ignored if absent, since a
// fully environment-variable-driven deployment never needs one) and
// returns a Config built from LIBRARY_DIR and CIRCUIT_AUTHOR, falling
// back to "./library" and "anonymous" respectively.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		LibraryDir: getenv("LIBRARY_DIR", "./library"),
		Author:     getenv("CIRCUIT_AUTHOR", "anonymous"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
