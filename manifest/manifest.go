package manifest

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ofs/ofss-config/ip"
	"github.com/ofs/ofss-config/util"
	"github.com/ofs/ofss-config/workspace"
)

// IP is the resolved configuration of one deployed IP.
type IP struct {
	Name      string `yaml:"name"`
	Component string `yaml:"component"`
	IPFile    string `yaml:"ip_file"`
	Preset    string `yaml:"preset,omitempty"`
	// Parameters keep the order in which they were passed to ip-deploy.
	Parameters yaml.MapSlice `yaml:"parameters,omitempty"`
}

type Manifest struct {
	ToolVersion string              `yaml:"tool_version"`
	Target      string              `yaml:"target"`
	Revision    *workspace.Revision `yaml:"revision,omitempty"`
	Inputs      []string            `yaml:"inputs"`
	IPs         []IP                `yaml:"ips"`
}

type ParameterChange struct {
	Name     string
	Old, New interface{}
}

type IPDiff struct {
	IPFile  string
	Changes []ParameterChange
}

type DiffResult struct {
	Differ          bool
	ModifiedIPs     []IPDiff
	AddedIPs        []IP
	RemovedIPs      []IP
	RevisionChanged bool
}

func (c ParameterChange) String() string {
	switch {
	case c.Old == nil:
		return fmt.Sprintf("%s: added %v", c.Name, c.New)
	case c.New == nil:
		return fmt.Sprintf("%s: removed %v", c.Name, c.Old)
	}
	return fmt.Sprintf("%s: %v -> %v", c.Name, c.Old, c.New)
}

// Generate describes the resolved state of every resolver. `rev` is the revision of the
// target tree, nil if it is not a git repository.
func Generate(version, target string, rev *workspace.Revision, inputs []string, resolvers []ip.Resolver) Manifest {
	manifest := Manifest{
		ToolVersion: version,
		Target:      target,
		Revision:    rev,
		Inputs:      inputs,
	}

	for _, r := range resolvers {
		manifest.IPs = append(manifest.IPs, IP{
			Name:      r.Name(),
			Component: r.Component(),
			IPFile:    r.IPFile(),
			Preset:    r.Preset(),
			Parameters: util.MappedSlice(r.Parameters().Entries(), func(p ip.Parameter) yaml.MapItem {
				return yaml.MapItem{Key: p.Name, Value: ip.FormatValue(p.Value)}
			}),
		})
	}
	return manifest
}

// Write stores the manifest at `p`, replacing any previous one.
func Write(p string, manifest Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return errors.Wrap(err, "failed to encode manifest")
	}
	return util.WriteFileAtomic(p, data)
}

// Read loads a manifest written by Write.
func Read(p string) (Manifest, error) {
	var manifest Manifest
	data, err := os.ReadFile(p)
	if err != nil {
		return manifest, errors.Wrapf(err, "failed to read manifest '%s'", p)
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return manifest, errors.Wrapf(err, "failed to parse manifest '%s'", p)
	}
	return manifest, nil
}

func diffParameters(newParams, oldParams yaml.MapSlice) []ParameterChange {
	changes := []ParameterChange{}

	oldValues := map[interface{}]interface{}{}
	for _, item := range oldParams {
		oldValues[item.Key] = item.Value
	}
	newValues := map[interface{}]interface{}{}
	for _, item := range newParams {
		newValues[item.Key] = item.Value
		old, found := oldValues[item.Key]
		if !found {
			changes = append(changes, ParameterChange{Name: fmt.Sprint(item.Key), New: item.Value})
		} else if old != item.Value {
			changes = append(changes, ParameterChange{Name: fmt.Sprint(item.Key), Old: old, New: item.Value})
		}
	}
	for _, item := range oldParams {
		if _, found := newValues[item.Key]; !found {
			changes = append(changes, ParameterChange{Name: fmt.Sprint(item.Key), Old: item.Value})
		}
	}
	return changes
}

// Diff compares two manifests IP by IP, matching IPs by their IP file.
func Diff(newManifest, oldManifest Manifest) DiffResult {
	result := DiffResult{}

	if newManifest.Revision != nil && oldManifest.Revision != nil && *newManifest.Revision != *oldManifest.Revision {
		result.Differ = true
		result.RevisionChanged = true
	}

	findIPByFile := func(ipFile string, ips []IP) (IP, bool) {
		for _, candidate := range ips {
			if candidate.IPFile == ipFile {
				return candidate, true
			}
		}
		return IP{}, false
	}

	// Iterate through the new IPs to find added and changed ones. A second pass through the
	// old IPs finds the removed ones.
	for _, newIP := range newManifest.IPs {
		oldIP, found := findIPByFile(newIP.IPFile, oldManifest.IPs)
		if !found {
			result.Differ = true
			result.AddedIPs = append(result.AddedIPs, newIP)
			continue
		}
		changes := diffParameters(newIP.Parameters, oldIP.Parameters)
		if oldIP.Preset != newIP.Preset {
			changes = append(changes, ParameterChange{Name: "preset", Old: oldIP.Preset, New: newIP.Preset})
		}
		if len(changes) > 0 {
			result.Differ = true
			result.ModifiedIPs = append(result.ModifiedIPs, IPDiff{IPFile: newIP.IPFile, Changes: changes})
		}
	}

	for _, oldIP := range oldManifest.IPs {
		if _, found := findIPByFile(oldIP.IPFile, newManifest.IPs); !found {
			result.Differ = true
			result.RemovedIPs = append(result.RemovedIPs, oldIP)
		}
	}

	return result
}
