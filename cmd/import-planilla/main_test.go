package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"examen-portal/internal/planilla"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	archivo := cmd.Flags().Lookup("archivo")
	require.NotNil(t, archivo)
	assert.Equal(t, "a", archivo.Shorthand)
	assert.Equal(t, "", archivo.DefValue)

	vaciar := cmd.Flags().Lookup("vaciar")
	require.NotNil(t, vaciar)
	assert.Equal(t, "false", vaciar.DefValue)
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRootCmd_MissingFileInsertsNothing(t *testing.T) {
	// nothing listens on port 1, and the connector is never dialed for a missing file
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://127.0.0.1:1/?directConnection=true")
	t.Setenv("MONGO_TIMEOUT_SECONDS", "1")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--archivo", filepath.Join(t.TempDir(), "no-existe.csv"), "--vaciar"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, planilla.ErrFileNotFound)
	assert.Empty(t, out.String())
}
