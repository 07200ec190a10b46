package ofss

import (
	"strings"

	"github.com/ofs/ofss-config/log"
)

// SupportedFamily is the only FPGA family the tool generates IP for.
const SupportedFamily = "agilex"

// IP type names as they appear in the `type` key of an OFSS [ip] section.
const (
	TypeOFS    = "ofs"
	TypeIOPLL  = "iopll"
	TypePCIe   = "pcie"
	TypeMemory = "memory"
	TypeHSSI   = "hssi"
)

// SettingsSection is the section holding an IP's general settings.
const SettingsSection = "settings"

// maxPCIeInstances allows one host and one SoC PCIe subsystem.
const maxPCIeInstances = 2

var requiredProjectSettings = []string{"platform", "family", "part", "device_id"}

// ProjectSettings is the read-only view of the global [ofs] configuration shared by all IPs.
type ProjectSettings struct {
	Platform string
	Family   string
	Part     string
	DeviceID string
	Fim      string

	// PClk is the IOPLL p_clk frequency in MHz, empty if no IOPLL is configured.
	PClk string

	Settings *Section
}

// Validate checks the merged configuration and returns the project settings derived from it.
func Validate(cfg MergedConfig) (*ProjectSettings, error) {
	ofsInstances, ok := cfg[TypeOFS]
	if !ok || len(ofsInstances) == 0 {
		return nil, Errorf(MissingSetting, "OFS", "Must have OFS project info")
	}
	if len(ofsInstances) > 1 {
		return nil, Errorf(StructuralViolation, "OFS", "%s should only have 1 set of configuration, found %d: %s",
			TypeOFS, len(ofsInstances), strings.Join(sources(ofsInstances), ", "))
	}

	settings, ok := ofsInstances[0].Section(SettingsSection)
	if !ok {
		return nil, Errorf(MissingSetting, "OFS", "[%s] section not found in %s", SettingsSection, ofsInstances[0].Source)
	}
	for _, key := range requiredProjectSettings {
		if !settings.Has(key) {
			return nil, Errorf(MissingSetting, "OFS", "%s not found for current OFS configuration", key)
		}
	}

	project := &ProjectSettings{
		Platform: settings.Value("platform", ""),
		Family:   settings.Value("family", ""),
		Part:     settings.Value("part", ""),
		DeviceID: settings.Value("device_id", ""),
		Fim:      settings.Value("fim", ""),
		Settings: settings,
	}
	if strings.ToLower(project.Family) != SupportedFamily {
		return nil, Errorf(UnsupportedValue, "OFS", "OFSS Config tool currently only supporting %s, got '%s'", SupportedFamily, project.Family)
	}

	for _, ipType := range cfg.Types() {
		instances := cfg[ipType]
		switch ipType {
		case TypeOFS:
			continue
		case TypePCIe:
			if len(instances) > maxPCIeInstances {
				return nil, Errorf(StructuralViolation, "PCIe", "%s can have at most %d sets of configuration (host and SoC), found %d: %s",
					ipType, maxPCIeInstances, len(instances), strings.Join(sources(instances), ", "))
			}
		case TypeIOPLL, TypeMemory, TypeHSSI:
			if len(instances) > 1 {
				return nil, Errorf(StructuralViolation, strings.ToUpper(ipType), "%s should only have 1 set of configuration, found %d: %s",
					ipType, len(instances), strings.Join(sources(instances), ", "))
			}
		default:
			log.Warning("Ignoring unknown IP type '%s' from %s.\n", ipType, strings.Join(sources(instances), ", "))
		}
	}

	if iopll, ok := cfg[TypeIOPLL]; ok {
		pClk, ok := iopll[0].Section("p_clk")
		if !ok || !pClk.Has("freq") {
			return nil, Errorf(MissingSetting, "IOPLL", "[p_clk] freq not found in %s", iopll[0].Source)
		}
		project.PClk = pClk.Value("freq", "")
	}

	return project, nil
}

func sources(instances []*Instance) []string {
	result := make([]string, 0, len(instances))
	for _, inst := range instances {
		result = append(result, inst.Source)
	}
	return result
}
