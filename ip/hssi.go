package ip

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/ofss"
	"github.com/ofs/ofss-config/util"
)

const hssiDefaultPorts = 20

// hssiMaxChannels is the channel ceiling per data rate.
var hssiMaxChannels = map[string]int{
	"10GbE":      16,
	"25GbE":      8,
	"100GAUI-2":  4,
	"100GCAUI-4": 4,
	"200GAUI-4":  2,
	"400GAUI-8":  1,
}

// Multi-lane data rates occupy every fourth port.
var hssiQuadRates = []string{"100GCAUI-4", "100GAUI-2", "200GAUI-4"}

var hssiRSFECTypes = map[string]int{
	"IEEE_802.3_BASE-R_Firecode": 1,
	"IEEE_802.3_RS_528_514":      2,
	"IEEE_802.3_RS_544_514":      3,
}

var hssiClientInterfaces = map[string]int{
	"MAC Segmented": 0,
	"MAC Avalon ST": 1,
}

// HSSI configures the Ethernet subsystem.
type HSSI struct {
	deployment
	config *ofss.Instance

	numChannels     int
	startChannel    int
	dataRate        string
	rsfecType       string
	clientInterface string
	ports           []int
}

// NewHSSI creates the resolver for the HSSI subsystem.
func NewHSSI(project *ofss.ProjectSettings, config *ofss.Instance, root string) *HSSI {
	r := &HSSI{
		deployment: newDeployment("HSSI", "hssi_ss", project, root, "ipss", "hssi", "qip", "hssi_ss"),
		config:     config,
	}
	r.searchPath = filepath.Join(r.ipPath, "presets") + ",$"
	return r
}

func (r *HSSI) GatherSettings() error {
	settings, _ := r.config.Section(ofss.SettingsSection)

	var err error
	if r.outputName, err = r.requireSetting(settings, "output_name"); err != nil {
		return err
	}
	channels, err := r.requireSetting(settings, "num_channels")
	if err != nil {
		return err
	}
	if r.numChannels, err = strconv.Atoi(channels); err != nil || r.numChannels < 0 {
		return r.errorf(ofss.UnsupportedValue, "num_channels must be a non-negative number, got '%s'", channels)
	}
	start := settings.Value("start_channel", "0")
	if r.startChannel, err = strconv.Atoi(start); err != nil || r.startChannel < 0 {
		return r.errorf(ofss.UnsupportedValue, "start_channel must be a non-negative number, got '%s'", start)
	}
	if r.dataRate, err = r.requireSetting(settings, "data_rate"); err != nil {
		return err
	}
	r.rsfecType = settings.Value("eth_f_rsfec", "")
	r.clientInterface = settings.Value("client_interface", "")

	if preset, ok := settings.Get("preset"); ok {
		r.preset = preset
		return nil
	}
	r.setDefaultParams()
	return nil
}

func (r *HSSI) setDefaultParams() {
	for port := 0; port < hssiDefaultPorts; port++ {
		r.params.SetAll([]Parameter{
			{fmt.Sprintf("PORT%d_ENABLED_GUI", port), 0},
			{fmt.Sprintf("p%d_eth_f_ENABLE_AN", port), 0},
			{fmt.Sprintf("p%d_eth_f_ENABLE_LT", port), 0},
			{fmt.Sprintf("PORT%d_PROFILE_GUI", port), "25GbE"},
			{fmt.Sprintf("p%d_eth_f_PTP_LOGIC_RES_OPT_GUI", port), 3},
			{fmt.Sprintf("p%d_ehip_PO_CAL_ENABLE", port), 0},
			{fmt.Sprintf("p%d_eth_f_txmac_saddr_gui", port), 73588229205},
			{fmt.Sprintf("PORT%d_NUM_OF_STREAM", port), 2},
			{fmt.Sprintf("p%d_ehip_HOTPLUG_EN", port), 1},
		})
	}
}

func (r *HSSI) Validate() error {
	maxChannels, ok := hssiMaxChannels[r.dataRate]
	if !ok {
		return r.errorf(ofss.UnsupportedValue, "Data_rate %s currently not supported for this OFS Release's OFS Configuration Tool", r.dataRate)
	}
	if r.numChannels > maxChannels {
		return r.errorf(ofss.StructuralViolation, "With data rate %s, cannot exceed %d channels", r.dataRate, maxChannels)
	}
	if _, ok := hssiRSFECTypes[r.rsfecType]; r.rsfecType != "" && !ok {
		return r.errorf(ofss.UnsupportedValue, "eth_f_rsfec '%s' not supported, expected one of: %s",
			r.rsfecType, strings.Join(util.OrderedKeys(hssiRSFECTypes), ", "))
	}
	if _, ok := hssiClientInterfaces[r.clientInterface]; r.clientInterface != "" && !ok {
		return r.errorf(ofss.UnsupportedValue, "client_interface '%s' not supported, expected one of: %s",
			r.clientInterface, strings.Join(util.OrderedKeys(hssiClientInterfaces), ", "))
	}
	return nil
}

func (r *HSSI) ResolveParameters() error {
	increment := 1
	if slices.Contains(hssiQuadRates, r.dataRate) {
		increment = 4
	}
	r.ports = make([]int, 0, r.numChannels)
	for i := 0; i < r.numChannels; i++ {
		r.ports = append(r.ports, r.startChannel+increment*i)
	}

	if r.preset != "" {
		return nil
	}

	rsfec := 1
	if r.dataRate == "10GbE" {
		rsfec = 0
	}
	for _, port := range r.ports {
		r.params.Set(fmt.Sprintf("PORT%d_PROFILE_GUI", port), r.dataRate)
		r.params.Set(fmt.Sprintf("PORT%d_ENABLED_GUI", port), "1")
		r.params.Set(fmt.Sprintf("PORT%d_RSFEC_GUI", port), rsfec)
		if r.clientInterface != "" {
			r.params.Set(fmt.Sprintf("p%d_eth_f_CLIENT_INT_GUI", port), hssiClientInterfaces[r.clientInterface])
		}
		if r.rsfecType != "" {
			r.params.Set(fmt.Sprintf("p%d_eth_f_RSFEC_TYPE_P0_GUI", port), hssiRSFECTypes[r.rsfecType])
		}
	}
	r.params.Set("NUM_ENABLED_PORTS", r.numChannels)
	return nil
}

// Ports returns the enabled port numbers.
func (r *HSSI) Ports() []int {
	return r.ports
}

func (r *HSSI) Summarize() {
	log.Log("\n")
	log.Log("=========================\n")
	log.Log("HSSI Summary\n")
	log.Log("=========================\n")
	log.Log("HSSI IP Path: %s\n", r.ipPath)
	log.Log("Num Channels:%d\n", r.numChannels)
	log.Log("Start Channel:%d\n", r.startChannel)
	log.Log("Data Rate:%s\n", r.dataRate)
	log.Log("Configuring the following ports:\n")
	log.IndentationLevel++
	for _, port := range r.ports {
		log.Log("Port%d\n", port)
	}
	log.IndentationLevel--
	log.Log("\n")
}
