package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/graph-score/domain/message"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "t"}
	var o Options
	c.Flags().StringVar(&o.OSCHost, "osc-host", "", "")
	c.Flags().IntVar(&o.OSCPort, "osc-port", 0, "")
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("6.0")
	require.NoError(t, err)
	assert.Equal(t, 6.0, d)

	for _, bad := range []string{"", "abc", "0", "-2"} {
		_, err := parseDuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"osc_host":"10.0.0.5","osc_port":9000,"slice_width":40}`), 0o644))

	c := newFlagCmd(t, "--osc-port", "9100")
	cfg, err := loadConfig(c, Options{ConfigPath: path, OSCPort: 9100, Debug: true}, "2.5")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.OSCHost, "unset flag keeps file value")
	assert.Equal(t, 9100, cfg.OSCPort)
	assert.Equal(t, 40, cfg.SliceWidth)
	assert.Equal(t, 2.5, cfg.DurationSeconds)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_RejectsBadDuration(t *testing.T) {
	_, err := loadConfig(newFlagCmd(t), Options{}, "soon")
	assert.Error(t, err)
}

func TestRootArgs(t *testing.T) {
	defer func() { opts = Options{} }()
	opts = Options{}
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"score.png", "6"}))
	assert.Error(t, rootCmd.Args(rootCmd, []string{"6"}))

	opts.FromScreen = true
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"6"}))
	assert.Error(t, rootCmd.Args(rootCmd, []string{"score.png", "6"}))
}

func TestRootHelp_NamesOSCPaths(t *testing.T) {
	assert.Contains(t, rootCmd.Long, message.PathObjectCount)
	assert.Contains(t, rootCmd.Long, "/image/scan_*")
	for _, p := range []string{message.PathScanObjectCount, message.PathScanMinSize, message.PathScanAvgSize, message.PathScanMaxSize} {
		assert.True(t, strings.HasPrefix(p, "/image/scan_"), p)
	}
	assert.NotContains(t, rootCmd.Long, " /scan/")
}
