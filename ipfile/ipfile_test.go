package ipfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sysPLL = `<?xml version="1.0" encoding="UTF-8"?>
<ipxact:component xmlns:altera="http://www.altera.com/XMLSchema/IPXact2014/extensions" xmlns:ipxact="http://www.accellera.org/XMLSchema/IPXACT/1685-2014">
  <ipxact:vendor>Intel Corporation</ipxact:vendor>
  <ipxact:library>sys_pll</ipxact:library>
  <ipxact:name>sys_pll</ipxact:name>
  <ipxact:version>19.3.0</ipxact:version>
  <ipxact:busInterfaces>
    <ipxact:busInterface>
      <ipxact:name>refclk</ipxact:name>
    </ipxact:busInterface>
  </ipxact:busInterfaces>
  <ipxact:model></ipxact:model>
  <ipxact:vendorExtensions>
    <altera:entity_info>
      <ipxact:vendor>Intel Corporation</ipxact:vendor>
    </altera:entity_info>
    <altera:altera_module_parameters>
      <ipxact:parameters>
        <ipxact:parameter parameterId="gui_output_clock_frequency0" type="string">
          <ipxact:name>gui_output_clock_frequency0</ipxact:name>
          <ipxact:displayName>Desired Frequency</ipxact:displayName>
          <ipxact:value>470.0</ipxact:value>
        </ipxact:parameter>
        <ipxact:parameter parameterId="gui_clock_name_string0" type="string">
          <ipxact:name>gui_clock_name_string0</ipxact:name>
          <ipxact:displayName>Clock Name</ipxact:displayName>
          <ipxact:value></ipxact:value>
        </ipxact:parameter>
      </ipxact:parameters>
    </altera:altera_module_parameters>
    <altera:altera_system_parameters>
      <ipxact:parameters>
        <ipxact:parameter parameterId="deviceFamily" type="string">
          <ipxact:name>deviceFamily</ipxact:name>
          <ipxact:displayName>Device family</ipxact:displayName>
          <ipxact:value>Agilex</ipxact:value>
        </ipxact:parameter>
        <ipxact:parameter parameterId="device" type="string">
          <ipxact:name>device</ipxact:name>
          <ipxact:displayName>Device</ipxact:displayName>
          <ipxact:value>AGFB014R24A2E2V</ipxact:value>
        </ipxact:parameter>
      </ipxact:parameters>
    </altera:altera_system_parameters>
  </ipxact:vendorExtensions>
</ipxact:component>
`

func writeIP(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sys_pll.ip")
	require.NoError(t, os.WriteFile(p, []byte(sysPLL), 0664))
	return p
}

func TestRead(t *testing.T) {
	f, err := Read(writeIP(t))
	require.NoError(t, err)

	require.Equal(t, "Intel Corporation", f.Vendor)
	require.Equal(t, "sys_pll", f.Name)
	require.Equal(t, "19.3.0", f.Version)
	require.Len(t, f.ModuleParameters, 2)
	require.Len(t, f.SystemParameters, 2)
	require.Equal(t, Parameter{
		ID:          "gui_output_clock_frequency0",
		Type:        "string",
		Name:        "gui_output_clock_frequency0",
		DisplayName: "Desired Frequency",
		Value:       "470.0",
	}, f.ModuleParameters[0])

	info := f.Info()
	require.Len(t, info, len(InfoParameters))
	require.Equal(t, "device", info[0].Key)
	require.Equal(t, "AGFB014R24A2E2V", info[0].Value)
	require.Equal(t, "Agilex", info[1].Value)
	require.Empty(t, info[3].Value)
}

func TestWriteReadable(t *testing.T) {
	f, err := Read(writeIP(t))
	require.NoError(t, err)

	dir := t.TempDir()
	p, err := f.WriteReadable(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "sys_pll_readable.ip"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, `**********
IP INFO - sys_pll
**********
IP: sys_pll
device: AGFB014R24A2E2V
deviceFamily: Agilex
deviceSpeedGrade: 
generationId: 


**********
MODULE PARAMETERS
**********
gui_clock_name_string0: None (string)
gui_output_clock_frequency0: 470.0 (string)


**********
SYSTEM PARAMETERS
**********
device: AGFB014R24A2E2V (string)
deviceFamily: Agilex (string)
`, string(data))
}

func TestReadMalformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.ip")
	require.NoError(t, os.WriteFile(p, []byte("<ipxact:component>"), 0664))

	_, err := Read(p)
	require.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "missing.ip"))
	require.Error(t, err)
}
