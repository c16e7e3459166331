package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, ".", cfg.RootDir)
	assert.Equal(t, "summarised.txt", cfg.OutputFile)
	assert.Equal(t, "consolidate.log", cfg.LogFile)
	assert.Equal(t, ".gitignore", cfg.IgnoreFile)
	assert.True(t, cfg.Recursive())
	assert.NotEmpty(t, cfg.ProgramName)
}

func TestBindParsesFlags(t *testing.T) {
	cfg := New()
	fs := pflag.NewFlagSet("consolidate", pflag.ContinueOnError)
	cfg.Bind(fs)

	err := fs.Parse([]string{
		"--no-include-subdirs",
		"-e", ".py,js",
		"--extensions", ".go",
		"--ignore", "*.tmp",
		"--ignore", "dist/",
		"--log-file", "",
		"--max-size", "2",
		"--timeout", "30s",
		"--show-skipped",
		"-q",
		"--no-color",
	})
	require.NoError(t, err)

	assert.False(t, cfg.Recursive())
	assert.Equal(t, []string{".py", "js", ".go"}, cfg.Extensions)
	assert.Equal(t, []string{"*.tmp", "dist/"}, cfg.CustomIgnore)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, int64(2), cfg.MaxFileSizeMB)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.ShowSkipped)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.NoColor)
}

func TestApplyArgs(t *testing.T) {
	cfg := New()
	cfg.ApplyArgs(nil)
	assert.Equal(t, ".", cfg.RootDir)
	assert.Equal(t, "summarised.txt", cfg.OutputFile)

	cfg.ApplyArgs([]string{"src", "out.txt"})
	assert.Equal(t, "src", cfg.RootDir)
	assert.Equal(t, "out.txt", cfg.OutputFile)
}

func TestFinalize(t *testing.T) {
	cfg := New()
	cfg.NoColor = true
	cfg.IgnoreFile = ""
	cfg.LogFile = "  run.log "

	cfg.Finalize()

	assert.False(t, cfg.UseColors)
	assert.Equal(t, DefaultIgnoreFile, cfg.IgnoreFile)
	assert.Equal(t, "run.log", cfg.LogFile)
}
