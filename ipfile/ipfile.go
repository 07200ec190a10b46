// Package ipfile reads the Quartus .ip files written by ip-deploy.
package ipfile

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ofs/ofss-config/util"
)

// InfoParameters are the system parameters describing the target device.
var InfoParameters = []string{"device", "deviceFamily", "deviceSpeedGrade", "generationId"}

// Parameter is a module or system parameter of an IP.
type Parameter struct {
	ID          string `xml:"parameterId,attr"`
	Type        string `xml:"type,attr"`
	Name        string `xml:"name"`
	DisplayName string `xml:"displayName"`
	Value       string `xml:"value"`
}

// Info renders the value and its type, e.g. "470.0 (string)".
func (p Parameter) Info() string {
	value := p.Value
	if value == "" {
		value = "None"
	}
	return fmt.Sprintf("%s (%s)", value, p.Type)
}

// File is the IP-XACT component description stored in a .ip file. Only the elements used
// for reporting are decoded.
type File struct {
	Path string `xml:"-"`

	Vendor  string `xml:"vendor"`
	Library string `xml:"library"`
	Name    string `xml:"name"`
	Version string `xml:"version"`

	ModuleParameters []Parameter `xml:"vendorExtensions>altera_module_parameters>parameters>parameter"`
	SystemParameters []Parameter `xml:"vendorExtensions>altera_system_parameters>parameters>parameter"`
}

// Read parses the .ip file at `p`.
func Read(p string) (*File, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read IP file '%s'", p)
	}

	file := &File{Path: p}
	if err := xml.Unmarshal(data, file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse IP file '%s'", p)
	}
	return file, nil
}

func parameterMap(params []Parameter) map[string]Parameter {
	m := make(map[string]Parameter, len(params))
	for _, p := range params {
		m[p.Name] = p
	}
	return m
}

// Info returns the device information of the IP, in the order of InfoParameters. Missing
// parameters have an empty value.
func (f *File) Info() []util.OrderedMapEntry[string, string] {
	system := parameterMap(f.SystemParameters)
	return util.MappedSlice(InfoParameters, func(name string) util.OrderedMapEntry[string, string] {
		return util.OrderedMapEntry[string, string]{Key: name, Value: system[name].Value}
	})
}

// Readable renders every parameter sorted by name.
func (f *File) Readable() []byte {
	var b bytes.Buffer
	section := func(title string) {
		fmt.Fprintf(&b, "**********\n%s\n**********\n", title)
	}

	section("IP INFO - " + f.Name)
	fmt.Fprintf(&b, "IP: %s\n", f.Name)
	for _, info := range f.Info() {
		fmt.Fprintf(&b, "%s: %s\n", info.Key, info.Value)
	}
	b.WriteString("\n\n")

	section("MODULE PARAMETERS")
	for _, entry := range util.OrderedEntries(parameterMap(f.ModuleParameters)) {
		fmt.Fprintf(&b, "%s: %s\n", entry.Key, entry.Value.Info())
	}
	b.WriteString("\n\n")

	section("SYSTEM PARAMETERS")
	for _, entry := range util.OrderedEntries(parameterMap(f.SystemParameters)) {
		fmt.Fprintf(&b, "%s: %s\n", entry.Key, entry.Value.Info())
	}
	return b.Bytes()
}

// WriteReadable writes the readable dump to `<dir>/<name>_readable.ip` and returns its path.
func (f *File) WriteReadable(dir string) (string, error) {
	p := filepath.Join(dir, f.Name+"_readable.ip")
	return p, util.WriteFileAtomic(p, f.Readable())
}
