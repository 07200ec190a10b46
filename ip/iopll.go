package ip

import (
	"strconv"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/ofss"
)

// minPClkMHz is the lowest p_clk frequency the FIM is closed at. The PCIe IP has its own
// device-dependent Fmax, which is checked by ip-deploy.
const minPClkMHz = 250

var iopllDefaults = []Parameter{
	{"gui_location_type", "I/O Bank"},
	{"gui_reference_clock_frequency", 100},
	{"gui_use_locked", 1},
	{"gui_number_of_clocks", 6},
	{"gui_clock_name_string0", "clk_sys"},
	{"gui_clock_name_string1", "clk_100m"},
	{"gui_clock_name_string2", "clk_sys_div2"},
	{"gui_clock_name_string3", "clk_ptp_slv"},
	{"gui_clock_name_string4", "clk_50m"},
	{"gui_clock_name_string5", "clk_sys_div4"},
	{"gui_output_clock_frequency0", 400},
	{"gui_output_clock_frequency1", 100},
	{"gui_output_clock_frequency2", 200},
	{"gui_output_clock_frequency3", 155.555556},
	{"gui_output_clock_frequency4", 50},
	{"gui_output_clock_frequency5", 100},
}

// IOPLL configures the system PLL. Its p_clk output also drives the PCIe streaming clock.
type IOPLL struct {
	deployment
	config *ofss.Instance

	pClk     float64
	pClkDiv2 float64
	pClkDiv4 float64
}

// NewIOPLL creates the resolver for the sys_pll IOPLL.
func NewIOPLL(project *ofss.ProjectSettings, config *ofss.Instance, root string) *IOPLL {
	return &IOPLL{
		deployment: newDeployment("IOPLL", "altera_iopll", project, root,
			"ofs-common", "src", "fpga_family", "agilex", "sys_pll"),
		config: config,
	}
}

func (r *IOPLL) GatherSettings() error {
	settings, _ := r.config.Section(ofss.SettingsSection)

	var err error
	if r.instanceName, err = r.requireSetting(settings, "instance_name"); err != nil {
		return err
	}
	if r.outputName, err = r.requireSetting(settings, "output_name"); err != nil {
		return err
	}
	return nil
}

func (r *IOPLL) Validate() error {
	pClk, err := strconv.ParseFloat(r.project.PClk, 64)
	if err != nil {
		return r.errorf(ofss.UnsupportedValue, "IOPLL p_clk '%s' is not a frequency in MHz", r.project.PClk)
	}
	if pClk < minPClkMHz {
		return r.errorf(ofss.UnsupportedValue, "IOPLL p_clk should be above %d MHz, got %s", minPClkMHz, r.project.PClk)
	}
	r.pClk = pClk
	return nil
}

func (r *IOPLL) ResolveParameters() error {
	r.pClkDiv2 = roundTo(r.pClk/2, 2)
	r.pClkDiv4 = roundTo(r.pClk/4, 2)

	for _, p := range iopllDefaults {
		r.params.Set(p.Name, p.Value)
		log.Debug("Setting iopll config %s to %v\n", p.Name, p.Value)
	}

	r.params.Set("gui_output_clock_frequency0", r.project.PClk)
	r.params.Set("gui_output_clock_frequency2", r.pClkDiv2)
	r.params.Set("gui_output_clock_frequency5", r.pClkDiv4)
	r.params.Set("gui_output_clock_frequency_ps0", clockPeriod(r.pClk))
	r.params.Set("gui_output_clock_frequency_ps2", clockPeriod(r.pClkDiv2))
	r.params.Set("gui_output_clock_frequency_ps5", clockPeriod(r.pClkDiv4))
	return nil
}

// clockPeriod converts a frequency in MHz to the period in picoseconds.
func clockPeriod(freqMHz float64) float64 {
	return roundTo(1.0e6/freqMHz, 3)
}

func (r *IOPLL) Summarize() {
	log.Log("\n")
	log.Log("=========================\n")
	log.Log("IOPLL Summary\n")
	log.Log("=========================\n")
	log.Log("IOPLL IP Path: %s\n", r.ipPath)
	log.Log("p_clk freq = %s\n", r.project.PClk)
	log.Log("p_clk/2 freq = %s\n", FormatValue(r.pClkDiv2))
	log.Log("p_clk/4 freq = %s\n", FormatValue(r.pClkDiv4))
	log.Log("\n")
}
