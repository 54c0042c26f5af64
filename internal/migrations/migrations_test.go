package migrations

import (
	"context"
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(files, "sql")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, ident, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init", ident)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	for _, table := range []string{"tasks", "task_steps", "vibe_projects", "vibe_coders", "profiles",
		"developer_profiles", "vibe_coder_profiles", "agency_profiles"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestSetup_CanceledContext(t *testing.T) {
	r := NewRunner("postgres://unused", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Setup(ctx), context.Canceled)
}
