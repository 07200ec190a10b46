package ip

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/ofss"
	"github.com/ofs/ofss-config/util"
)

const (
	defaultPCIeComponent = "pcie_ss"
	pcieAvailableLanes   = 16
	maxPFs               = 8
	maxVFs               = 2000

	platformN6001  = "n6001"
	platformF2000x = "f2000x"
	socPCIeOutput  = "soc_pcie_ss"
)

var supportedPCIeGens = []string{"4", "5"}

// PCIe configures one PCIe subsystem instance (host or SoC).
type PCIe struct {
	deployment
	config *ofss.Instance
	tables pcieComponent

	gen       string
	instances string
	laneWidth string

	// pfs holds the PF section names ordered by function number.
	pfs       []string
	pfVfCount map[string]int
	numVFs    int
}

// NewPCIe creates the resolver for a PCIe subsystem instance.
func NewPCIe(project *ofss.ProjectSettings, config *ofss.Instance, root string) *PCIe {
	component := defaultPCIeComponent
	if settings, ok := config.Section(ofss.SettingsSection); ok {
		component = settings.Value("ip_component", defaultPCIeComponent)
	}
	return &PCIe{
		deployment: newDeployment("PCIe", component, project, root, "ipss", "pcie", "qip"),
		config:     config,
		pfVfCount:  map[string]int{},
	}
}

func (r *PCIe) GatherSettings() error {
	tables, ok := pcieComponents[r.component]
	if !ok {
		return r.errorf(ofss.UnsupportedValue, "No parameter tables for ip_component '%s', supported: %s",
			r.component, strings.Join(util.OrderedKeys(pcieComponents), ", "))
	}
	r.tables = tables
	log.Debug("Using %s parameter tables.\n", r.component)

	settings, _ := r.config.Section(ofss.SettingsSection)
	var err error
	if r.outputName, err = r.requireSetting(settings, "output_name"); err != nil {
		return err
	}

	r.laneWidth = strconv.Itoa(pcieAvailableLanes)
	r.gen = settings.Value("pcie_gen", "")
	if instances, ok := settings.Get("pcie_instances"); ok {
		n, err := strconv.Atoi(instances)
		if err != nil || n < 1 || n > pcieAvailableLanes {
			return r.errorf(ofss.UnsupportedValue, "pcie_instances must be a number between 1 and %d, got '%s'", pcieAvailableLanes, instances)
		}
		r.instances = instances
		r.laneWidth = strconv.Itoa(pcieAvailableLanes / n)
	}
	r.laneWidth = settings.Value("pcie_lane_width", r.laneWidth)

	if preset, ok := settings.Get("preset"); ok {
		r.preset = preset
		log.Debug("Using PCIe preset %s.\n", preset)
		return nil
	}
	r.params.SetAll(r.tables.defaults)
	for _, p := range r.tables.defaults {
		log.Debug("Setting pcie config %s to %v\n", p.Name, p.Value)
	}

	for _, section := range r.config.Sections() {
		if strings.HasPrefix(section.Name, "pf") {
			r.pfs = append(r.pfs, section.Name)
		}
	}
	r.pfs = util.SliceOrderedBy(r.pfs, func(pf *string) int { return functionNumber(*pf) })

	for _, pf := range r.pfs {
		section, _ := r.config.Section(pf)
		count := 0
		if value, ok := section.Get("num_vfs"); ok {
			count, err = strconv.Atoi(value)
			if err != nil || count < 0 {
				return r.errorf(ofss.UnsupportedValue, "num_vfs of %s must be a non-negative number, got '%s'", pf, value)
			}
		}
		r.pfVfCount[pf] = count
		r.numVFs += count
	}
	return nil
}

// functionNumber returns N for a "pfN" section, sorting malformed names last.
func functionNumber(pf string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(pf, "pf"))
	if err != nil {
		return math.MaxInt
	}
	return n
}

func (r *PCIe) Validate() error {
	if r.preset != "" {
		return nil
	}

	numPFs := len(r.pfs)
	if numPFs > maxPFs || numPFs < 1 {
		return r.errorf(ofss.StructuralViolation, "Number of PFS in configuration should be between 1 and %d", maxPFs)
	}
	for i := 0; i < numPFs; i++ {
		if _, ok := r.pfVfCount[fmt.Sprintf("pf%d", i)]; !ok {
			return r.errorf(ofss.StructuralViolation,
				"Configuration file must contain incremental PFs with no skipped PF. Missing PF%d", i)
		}
	}

	switch r.project.Platform {
	case platformN6001:
		if r.pfVfCount["pf0"] == 0 && numPFs < 2 {
			return r.errorf(ofss.StructuralViolation, "Need to have minimum 1 VF on PF0 or PF0 and PF1 on %s", r.outputName)
		}
	case platformF2000x:
		if r.outputName == socPCIeOutput && r.pfVfCount["pf0"] == 0 {
			return r.errorf(ofss.StructuralViolation, "Need to have minimum 1 VF on PF0 on %s", r.outputName)
		}
	}

	if r.gen != "" {
		if !slices.Contains(supportedPCIeGens, r.gen) {
			return r.errorf(ofss.UnsupportedValue, "Currently only supporting PCIe Gen 4 or 5")
		}
		if r.instances == "" {
			return r.errorf(ofss.MissingSetting, "Must provide number of PCIe instances")
		}
	}

	if r.numVFs > maxVFs {
		return r.errorf(ofss.StructuralViolation, "Number of VFs should not exceed %d across all PFs", maxVFs)
	}
	return nil
}

func (r *PCIe) ResolveParameters() error {
	if r.preset != "" {
		return nil
	}

	if r.project.PClk != "" {
		r.params.Set("axi_st_clk_freq_user_hwtcl", r.project.PClk+"MHz")
	}
	if r.gen != "" && r.instances != "" {
		r.params.Set("top_topology_hwtcl", fmt.Sprintf("Gen%s %sx%s", r.gen, r.instances, r.laneWidth))
	}

	for _, pf := range r.pfs {
		section, _ := r.config.Section(pf)
		r.setFuncParams(r.tables.funcParams, pf, section)
		if r.pfVfCount[pf] > 0 {
			r.setFuncParams(r.tables.multiVFFuncParams, pf, section)
		}
		r.params.Set(fmt.Sprintf("core16_%s_vf_count_hwtcl", pf), r.pfVfCount[pf])
	}

	r.params.Set("core16_total_pf_count_hwtcl", len(r.pfs))
	if r.numVFs > 0 {
		r.params.Set("core16_enable_sriov_hwtcl", 1)
	}

	// A second link is configured through the core8_ parameters and must match the first one.
	if r.instances != "" && r.instances != "1" {
		for _, p := range r.params.Entries() {
			if !strings.HasPrefix(p.Name, "core16_") {
				continue
			}
			mirrored := "core8_" + strings.TrimPrefix(p.Name, "core16_")
			if !r.params.Has(mirrored) {
				r.params.Set(mirrored, p.Value)
			}
		}
	}
	return nil
}

func (r *PCIe) setFuncParams(params []funcParam, pf string, section *ofss.Section) {
	for _, p := range params {
		value := p.Default
		if override, ok := r.override(section, p.Override); ok {
			value = override
		}
		r.params.Set(p.nameFor(pf), value)
	}
}

// override returns the OFSS value replacing a parameter default, if any. Empty values keep
// the default.
func (r *PCIe) override(section *ofss.Section, field string) (interface{}, bool) {
	switch {
	case field == "":
		return nil, false
	case strings.HasPrefix(field, autoPrefix):
		derive, ok := derivedOverrides[field]
		if !ok {
			return nil, false
		}
		return derive(section)
	default:
		value, ok := section.Get(field)
		if !ok || value == "" {
			return nil, false
		}
		return value, true
	}
}

func (r *PCIe) Summarize() {
	mapping := util.MappedSlice(r.pfs, func(pf string) string {
		return fmt.Sprintf("%s: %d", pf, r.pfVfCount[pf])
	})

	log.Log("\n")
	log.Log("=========================\n")
	log.Log("PCIe (%s) Summary\n", r.component)
	log.Log("=========================\n")
	if r.preset != "" {
		log.Log("Preset = %s\n", r.preset)
	} else {
		log.Log("Total PF Count = %d\n", len(r.pfs))
		log.Log("Total VF Count = %d\n", r.numVFs)
		log.Log("PF VF Mapping = {%s}\n", strings.Join(mapping, ", "))
	}
	log.Log("\n")
}
