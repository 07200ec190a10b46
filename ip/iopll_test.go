package ip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofs/ofss-config/ofss"
)

func resolveIOPLL(t *testing.T, freq string) (*IOPLL, error) {
	t.Helper()
	cfg, ps, root := project(t, ofsFile("n6001"), iopllFile(freq))
	r := NewIOPLL(ps, cfg[ofss.TypeIOPLL][0], root)
	return r, resolve(r)
}

func TestIOPLLClocks(t *testing.T) {
	r, err := resolveIOPLL(t, "470")
	require.NoError(t, err)

	params := r.Parameters()
	requireParam(t, params, "gui_output_clock_frequency0", "470")
	requireParam(t, params, "gui_output_clock_frequency2", 235.0)
	requireParam(t, params, "gui_output_clock_frequency5", 117.5)
	requireParam(t, params, "gui_output_clock_frequency_ps0", 2127.66)
	requireParam(t, params, "gui_output_clock_frequency_ps2", 4255.319)
	requireParam(t, params, "gui_output_clock_frequency_ps5", 8510.638)

	// Untouched defaults.
	requireParam(t, params, "gui_output_clock_frequency1", 100)
	requireParam(t, params, "gui_output_clock_frequency3", 155.555556)
	requireParam(t, params, "gui_clock_name_string5", "clk_sys_div4")
}

func TestIOPLLRoundsDividedClocks(t *testing.T) {
	r, err := resolveIOPLL(t, "333")
	require.NoError(t, err)

	requireParam(t, r.Parameters(), "gui_output_clock_frequency2", 166.5)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency5", 83.25)
	require.Contains(t, r.DeployArgs(), "--component-parameter=gui_output_clock_frequency2=166.5")
}

func TestIOPLLRoundsFractionalClocks(t *testing.T) {
	r, err := resolveIOPLL(t, "250.01")
	require.NoError(t, err)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency2", 125.0)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency5", 62.5)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency_ps0", 3999.84)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency_ps2", 8000.0)

	r, err = resolveIOPLL(t, "250.1")
	require.NoError(t, err)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency2", 125.05)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency5", 62.52)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency_ps0", 3998.401)
	requireParam(t, r.Parameters(), "gui_output_clock_frequency_ps5", 15994.882)
	require.Contains(t, r.DeployArgs(), "--component-parameter=gui_output_clock_frequency5=62.52")
}

func TestRoundTo(t *testing.T) {
	for _, tc := range []struct {
		x        float64
		places   int
		expected float64
	}{
		{125.005, 2, 125.0},
		{62.525, 2, 62.52},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{2.675, 2, 2.67},
		{2127.659574, 3, 2127.66},
	} {
		require.Equal(t, tc.expected, roundTo(tc.x, tc.places), "roundTo(%v, %d)", tc.x, tc.places)
	}
}

func TestIOPLLDeployArgs(t *testing.T) {
	r, err := resolveIOPLL(t, "400")
	require.NoError(t, err)

	args := r.DeployArgs()
	require.Equal(t, "--family=agilex", args[0])
	require.Contains(t, args, "--component-name=altera_iopll")
	require.Contains(t, args, "--instance-name=iopll_0")
	require.Contains(t, args, "--output-name=sys_pll")
	require.Contains(t, args, "--component-parameter=gui_output_clock_frequency2=200.0")
	require.Contains(t, args, "--component-parameter=gui_output_clock_frequency5=100.0")
	require.Contains(t, args, "--component-parameter=gui_location_type=I/O Bank")

	require.Contains(t, r.CommandLine(), `--component-parameter=gui_location_type="I/O Bank"`)
	require.Contains(t, r.CommandLine(), `--part="AGFB014R24A2E2V"`)
	require.True(t, strings.HasSuffix(r.IPFile(), "/ofs-common/src/fpga_family/agilex/sys_pll/sys_pll.ip"), r.IPFile())
}

func TestIOPLLFrequencyFloor(t *testing.T) {
	_, err := resolveIOPLL(t, "249")
	requireKind(t, err, ofss.UnsupportedValue)
	require.Contains(t, err.Error(), "!!IOPLL Config Error!!")

	_, err = resolveIOPLL(t, "fast")
	requireKind(t, err, ofss.UnsupportedValue)

	_, err = resolveIOPLL(t, "250")
	require.NoError(t, err)
}

func TestIOPLLRequiresNames(t *testing.T) {
	cfg, ps, root := project(t, ofsFile("n6001"), `[ip]
type = iopll

[settings]
output_name = sys_pll

[p_clk]
freq = 400
`)
	err := resolve(NewIOPLL(ps, cfg[ofss.TypeIOPLL][0], root))
	requireKind(t, err, ofss.MissingSetting)
	require.Contains(t, err.Error(), "instance_name")
}

func TestQsysGenerateHint(t *testing.T) {
	r, err := resolveIOPLL(t, "400")
	require.NoError(t, err)

	hint := r.QsysGenerateHint()
	require.True(t, strings.HasPrefix(hint, "\n\n# This would generate the IP RTL."), hint)
	require.Contains(t, hint, "# qsys-generate "+r.IPFile()+" --output-directory="+r.ipPath+"/ --pro")
	require.Contains(t, hint, "#  --search-path="+r.searchPath)
}
