package config_test

import (
	"os"
	"testing"

	"github.com/iperetta/ECS-Simulator/config"
	"github.com/stretchr/testify/require"
)

func TestLoadUsesDefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("LIBRARY_DIR")
	os.Unsetenv("CIRCUIT_AUTHOR")
	cfg := config.Load()
	require.Equal(t, "./library", cfg.LibraryDir)
	require.Equal(t, "anonymous", cfg.Author)
}

func TestLoadHonorsEnvironment(t *testing.T) {
	t.Setenv("LIBRARY_DIR", "/tmp/parts")
	t.Setenv("CIRCUIT_AUTHOR", "ada")
	cfg := config.Load()
	require.Equal(t, "/tmp/parts", cfg.LibraryDir)
	require.Equal(t, "ada", cfg.Author)
}
