package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/fzf-keys/profile"
)

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	for _, name := range []string{"cpu-profile", "heap-profile"} {
		flag := flags.Lookup(name)
		require.NotNil(t, flag, "flag %s should be registered", name)
		assert.True(t, flag.Hidden, "flag %s should be hidden", name)
	}

	require.NoError(t, flags.Parse([]string{"--cpu-profile=cpu.prof", "--heap-profile", "heap.prof"}))
	assert.Equal(t, "cpu.prof", cfg.CPU)
	assert.Equal(t, "heap.prof", cfg.Heap)
}

func TestSessionDisabled(t *testing.T) {
	t.Parallel()

	s, err := profile.NewConfig().Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}

func TestSessionHeap(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cfg.Heap = filepath.Join(t.TempDir(), "heap.prof")

	s, err := cfg.Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	info, err := os.Stat(cfg.Heap)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

// CPU profiling is process-wide, so this test does not run in parallel.
func TestSessionCPU(t *testing.T) {
	cfg := profile.NewConfig()
	cfg.CPU = filepath.Join(t.TempDir(), "cpu.prof")

	s, err := cfg.Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	_, err = os.Stat(cfg.CPU)
	require.NoError(t, err)

	// Stopping twice is harmless.
	require.NoError(t, s.Stop())
}

func TestStartError(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cfg.CPU = filepath.Join(t.TempDir(), "missing", "cpu.prof")

	_, err := cfg.Start()
	require.ErrorContains(t, err, "create cpu profile")
}
