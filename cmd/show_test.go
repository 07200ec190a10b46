package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/ofs/ofss-config/ofss"
)

func TestYamlConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "iopll.ofss")
	require.NoError(t, os.WriteFile(p, []byte("[ip]\ntype = iopll\n\n[p_clk]\nfreq = 470\n"), 0664))

	cfg, err := ofss.Load([]string{p})
	require.NoError(t, err)

	data, err := yaml.Marshal(toYamlConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, "iopll:\n- source: "+p+"\n  sections:\n    p_clk:\n      freq: \"470\"\n", string(data))
}

func TestPrintConfig(t *testing.T) {
	buf := captureLog(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "hssi.ofss")
	require.NoError(t, os.WriteFile(p, []byte("[ip]\ntype = hssi\n\n[settings]\nnum_channels = 2\ndata_rate = 25GbE\n"), 0664))

	cfg, err := ofss.Load([]string{p})
	require.NoError(t, err)

	printConfig(cfg)
	require.Equal(t, "hssi:\n  "+p+"\n    [settings]\n      num_channels = 2\n      data_rate = 25GbE\n", buf.String())
}
