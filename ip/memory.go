package ip

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/ofss"
	"github.com/ofs/ofss-config/util"
)

const simMemoryOutputName = "ed_sim_mem"

var supportedMemoryPresets = []string{"n6001", "f2000x", "fseries-dk"}

// Memory configures the memory subsystem. It is always deployed from a preset.
type Memory struct {
	deployment
	config *ofss.Instance
}

// NewMemory creates the resolver for the memory subsystem.
func NewMemory(project *ofss.ProjectSettings, config *ofss.Instance, root string) *Memory {
	r := &Memory{
		deployment: newDeployment("Memory", "mem_ss", project, root, "ipss", "mem", "qip", "mem_ss"),
		config:     config,
	}
	r.instanceName = "mem_ss"
	return r
}

func (r *Memory) GatherSettings() error {
	settings, _ := r.config.Section(ofss.SettingsSection)

	var err error
	if r.outputName, err = r.requireSetting(settings, "output_name"); err != nil {
		return err
	}
	r.preset, err = r.requireSetting(settings, "preset")
	return err
}

func (r *Memory) Validate() error {
	return validateMemoryPreset(&r.deployment)
}

func (r *Memory) ResolveParameters() error {
	return nil
}

func (r *Memory) Summarize() {
	summarizePreset(&r.deployment)
}

// SimMemory configures the memory model used in simulation. It shares the preset of the
// memory subsystem.
type SimMemory struct {
	deployment
	config *ofss.Instance
}

// NewSimMemory creates the resolver for the simulation memory model.
func NewSimMemory(project *ofss.ProjectSettings, config *ofss.Instance, root string) *SimMemory {
	r := &SimMemory{
		deployment: newDeployment("SimMemory", "altera_emif_mem_model", project, root, "ipss", "mem", "qip", "ed_sim"),
		config:     config,
	}
	r.outputName = simMemoryOutputName
	return r
}

func (r *SimMemory) GatherSettings() error {
	settings, _ := r.config.Section(ofss.SettingsSection)

	var err error
	r.preset, err = r.requireSetting(settings, "preset")
	return err
}

func (r *SimMemory) Validate() error {
	return validateMemoryPreset(&r.deployment)
}

func (r *SimMemory) ResolveParameters() error {
	return nil
}

func (r *SimMemory) Summarize() {
	summarizePreset(&r.deployment)
}

func validateMemoryPreset(d *deployment) error {
	if !slices.Contains(supportedMemoryPresets, d.preset) {
		return ofss.Errorf(ofss.UnsupportedValue, "Memory", `Currently only supporting "--preset" values of "%s", got '%s'`,
			strings.Join(util.OrderedSlice(supportedMemoryPresets), `", "`), d.preset)
	}
	return nil
}

func summarizePreset(d *deployment) {
	log.Log("\n")
	log.Log("=========================\n")
	log.Log("%s Summary\n", d.ipType)
	log.Log("=========================\n")
	log.Log("Preset = %s\n", d.preset)
	log.Log("\n")
}
