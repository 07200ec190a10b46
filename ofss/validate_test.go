package ofss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func instance(source string, sections map[string]map[string]string) *Instance {
	inst := newInstance(source)
	for _, name := range []string{"settings", "p_clk", "pf0", "pf1"} {
		values, ok := sections[name]
		if !ok {
			continue
		}
		s := newSection(name)
		for k, v := range values {
			s.set(k, v)
		}
		inst.add(s)
	}
	return inst
}

func ofsInstance(family string) *Instance {
	return instance("base.ofss", map[string]map[string]string{
		"settings": {"platform": "n6001", "family": family, "part": "AGFB014R24A2E2V", "device_id": "6001"},
	})
}

func requireKind(t *testing.T, err error, want Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok, "unexpected error type: %v", err)
	require.Equal(t, want, kind, "error: %v", err)
}

func TestValidate(t *testing.T) {
	cfg := MergedConfig{
		TypeOFS:   {ofsInstance("Agilex")},
		TypeIOPLL: {instance("iopll.ofss", map[string]map[string]string{"p_clk": {"freq": "470"}})},
		TypePCIe:  {instance("host.ofss", nil), instance("soc.ofss", nil)},
	}

	project, err := Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, "n6001", project.Platform)
	require.Equal(t, "AGFB014R24A2E2V", project.Part)
	require.Equal(t, "6001", project.DeviceID)
	require.Equal(t, "470", project.PClk)
}

func TestValidateWithoutIOPLL(t *testing.T) {
	project, err := Validate(MergedConfig{TypeOFS: {ofsInstance("agilex")}})
	require.NoError(t, err)
	require.Empty(t, project.PClk)
}

func TestValidateMissingOFS(t *testing.T) {
	_, err := Validate(MergedConfig{TypeHSSI: {instance("hssi.ofss", nil)}})
	requireKind(t, err, MissingSetting)
}

func TestValidateMissingRequiredSetting(t *testing.T) {
	for _, key := range requiredProjectSettings {
		t.Run(key, func(t *testing.T) {
			values := map[string]string{"platform": "n6001", "family": "agilex", "part": "p", "device_id": "d"}
			delete(values, key)
			cfg := MergedConfig{TypeOFS: {instance("base.ofss", map[string]map[string]string{"settings": values})}}

			_, err := Validate(cfg)
			requireKind(t, err, MissingSetting)
			require.Contains(t, err.Error(), key)
		})
	}
}

func TestValidateUnsupportedFamily(t *testing.T) {
	_, err := Validate(MergedConfig{TypeOFS: {ofsInstance("stratix10")}})
	requireKind(t, err, UnsupportedValue)
}

func TestValidateInstanceCounts(t *testing.T) {
	ofs := ofsInstance("agilex")

	_, err := Validate(MergedConfig{TypeOFS: {ofs}, TypeHSSI: {instance("a", nil), instance("b", nil)}})
	requireKind(t, err, StructuralViolation)

	_, err = Validate(MergedConfig{TypeOFS: {ofs, ofs}})
	requireKind(t, err, StructuralViolation)

	_, err = Validate(MergedConfig{TypeOFS: {ofs}, TypePCIe: {instance("a", nil), instance("b", nil), instance("c", nil)}})
	requireKind(t, err, StructuralViolation)
}

func TestValidateIOPLLWithoutFrequency(t *testing.T) {
	cfg := MergedConfig{
		TypeOFS:   {ofsInstance("agilex")},
		TypeIOPLL: {instance("iopll.ofss", map[string]map[string]string{"settings": {"output_name": "sys_pll"}})},
	}
	_, err := Validate(cfg)
	requireKind(t, err, MissingSetting)
}
