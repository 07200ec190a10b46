package ofss

import (
	"github.com/ofs/ofss-config/util"
)

// Section is one named settings bag of an OFSS file. Keys keep their file order and are
// compared case-sensitively.
type Section struct {
	Name   string
	keys   []string
	values map[string]string
}

func newSection(name string) *Section {
	return &Section{Name: name, values: map[string]string{}}
}

func (s *Section) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value of `key` and whether it is present.
func (s *Section) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Value returns the value of `key`, or `def` if the key is absent.
func (s *Section) Value(key, def string) string {
	if value, ok := s.values[key]; ok {
		return value
	}
	return def
}

// Has reports whether `key` is present.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the keys in file order.
func (s *Section) Keys() []string {
	return append([]string{}, s.keys...)
}

// Map returns a copy of the section's key/value pairs.
func (s *Section) Map() map[string]string {
	m := make(map[string]string, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

// Instance is the configuration that a single OFSS file contributes to an IP type.
type Instance struct {
	// Source is the absolute path of the file the instance was read from.
	Source string

	sections map[string]*Section
	order    []string
}

func newInstance(source string) *Instance {
	return &Instance{Source: source, sections: map[string]*Section{}}
}

func (inst *Instance) add(section *Section) {
	if _, ok := inst.sections[section.Name]; !ok {
		inst.order = append(inst.order, section.Name)
	}
	inst.sections[section.Name] = section
}

// Section returns the named section.
func (inst *Instance) Section(name string) (*Section, bool) {
	section, ok := inst.sections[name]
	return section, ok
}

// Sections returns all sections in file order.
func (inst *Instance) Sections() []*Section {
	result := make([]*Section, 0, len(inst.order))
	for _, name := range inst.order {
		result = append(result, inst.sections[name])
	}
	return result
}

// Map returns the instance as nested maps, e.g. for serialization.
func (inst *Instance) Map() map[string]map[string]string {
	m := make(map[string]map[string]string, len(inst.sections))
	for name, section := range inst.sections {
		m[name] = section.Map()
	}
	return m
}

// MergedConfig maps a lowercased IP type to the instances configured for it, in the
// order in which their files were processed.
type MergedConfig map[string][]*Instance

// Types returns the configured IP types in alphabetical order.
func (cfg MergedConfig) Types() []string {
	return util.OrderedKeys(cfg)
}
