package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommand(t *testing.T) {
	t.Setenv("QJ_DB_DRIVER", "sqlite")
	t.Setenv("QJ_DB_PATH", filepath.Join(t.TempDir(), "cli.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"migrate"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "001_init.sql\n", out.String())
}

func TestBotCommand_RequiresVKSettings(t *testing.T) {
	t.Setenv("QJ_VK_TOKEN", "")
	rootCmd.SetArgs([]string{"bot"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "QJ_VK_TOKEN")
}
