package ip

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofs/ofss-config/ofss"
)

func ofsFile(platform string) string {
	return fmt.Sprintf(`[ip]
type = ofs

[settings]
platform = %s
family = agilex
fim = base_x16
part = AGFB014R24A2E2V
device_id = 6001
`, platform)
}

func iopllFile(freq string) string {
	return fmt.Sprintf(`[ip]
type = iopll

[settings]
output_name = sys_pll
instance_name = iopll_0

[p_clk]
freq = %s
`, freq)
}

func pcieFile(settings string, pfs ...string) string {
	content := "[ip]\ntype = pcie\n\n[settings]\n" + settings + "\n"
	for i, pf := range pfs {
		content += fmt.Sprintf("\n[pf%d]\n%s\n", i, pf)
	}
	return content
}

func hssiFile(settings string) string {
	return "[ip]\ntype = hssi\n\n[settings]\noutput_name = hssi_ss\n" + settings + "\n"
}

// project writes the given OFSS files into a fresh output root and loads them the way the
// deploy command does.
func project(t *testing.T, files ...string) (ofss.MergedConfig, *ofss.ProjectSettings, string) {
	t.Helper()
	root := t.TempDir()

	var paths []string
	for i, content := range files {
		p := filepath.Join(root, fmt.Sprintf("config_%d.ofss", i))
		require.NoError(t, os.WriteFile(p, []byte(content), 0664))
		paths = append(paths, p)
	}

	cfg, err := ofss.Load(paths)
	require.NoError(t, err)
	settings, err := ofss.Validate(cfg)
	require.NoError(t, err)
	return cfg, settings, root
}

// resolve runs every step up to and including parameter resolution.
func resolve(r Resolver) error {
	if err := r.GatherSettings(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	return r.ResolveParameters()
}

func resolvePCIe(t *testing.T, platform, settings string, pfs ...string) (*PCIe, error) {
	t.Helper()
	cfg, ps, root := project(t, ofsFile(platform), pcieFile(settings, pfs...))
	r := NewPCIe(ps, cfg[ofss.TypePCIe][0], root)
	return r, resolve(r)
}

func requireKind(t *testing.T, err error, want ofss.Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := ofss.KindOf(err)
	require.True(t, ok, "unexpected error type: %v", err)
	require.Equal(t, want, kind, "error: %v", err)
}

func requireParam(t *testing.T, params *ParameterMap, name string, want interface{}) {
	t.Helper()
	value, ok := params.Get(name)
	require.True(t, ok, "parameter %s is not set", name)
	require.Equal(t, want, value, "parameter %s", name)
}

type recordingRunner struct {
	calls []string
	args  [][]string
	err   error
}

func (r *recordingRunner) Run(ipType string, args []string) error {
	r.calls = append(r.calls, ipType)
	r.args = append(r.args, args)
	return r.err
}
