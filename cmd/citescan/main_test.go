package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/citescan/citescan/internal/registry"
)

func TestInitConfig_ValidatesRegistry(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""

	// Startup must reject a broken directory table; initConfig returns
	// registry.Validate's error verbatim, so a clean run proves both the
	// wiring and the shipped table.
	require.NoError(t, registry.Validate())
	require.NoError(t, initConfig(nil, nil))
}
