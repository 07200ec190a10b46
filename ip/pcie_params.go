package ip

import (
	"strings"

	"github.com/ofs/ofss-config/ofss"
)

// funcNumPlaceholder is replaced by the PF section name ("pf0", "pf1", ...) in the names of
// per-function parameters.
const funcNumPlaceholder = "{func_num}"

// autoPrefix marks an override field that is derived from other PF settings instead of being
// read from the OFSS file.
const autoPrefix = "AUTO_"

// funcParam is a per-function PCIe parameter. When Override is set, a non-empty value of
// that key in the PF section replaces Default.
type funcParam struct {
	Name     string
	Default  interface{}
	Override string
}

func (p funcParam) nameFor(pf string) string {
	return strings.ReplaceAll(p.Name, funcNumPlaceholder, pf)
}

// pcieComponent holds the parameter tables of one PCIe subsystem IP component.
type pcieComponent struct {
	defaults   []Parameter
	funcParams []funcParam
	// multiVFFuncParams is applied on top of funcParams for PFs with VFs.
	multiVFFuncParams []funcParam
}

// derivedOverrides computes AUTO_ fields from the PF section.
var derivedOverrides = map[string]func(pf *ofss.Section) (interface{}, bool){
	// The PCIe standard allows a narrower PASID, but hosts generally assume the full width.
	autoPrefix + "pasid_cap_max_pasid_width": func(pf *ofss.Section) (interface{}, bool) {
		if value, ok := pf.Get("pasid_cap_enable"); ok && isEnabled(value) {
			return 20, true
		}
		return nil, false
	},
}

var pcieComponents = map[string]pcieComponent{
	"pcie_ss": {
		defaults: []Parameter{
			{"g3_pld_clkfreq_user_hwtcl", "250MHz"},
			{"g4_pld_clkfreq_user_hwtcl", "500MHz"},
			{"axi_st_clk_freq_user_hwtcl", "400MHz"},
			{"axi_lite_clk_freq_user_hwtcl", 100},
			{"core16_dwdn_msg_fwd_en_hwtcl", 1},
			{"core16_flr_req_drop_en_hwtcl", 0},
			{"core16_enable_multi_func_hwtcl", 1},
			{"core16_enable_sriov_hwtcl", "1"},
			{"core16_enable_10bit_tag_support_intf_hwtcl", 1},
			{"core16_cpl_reordering_en_hwtcl", "1"},
			{"core16_ctrl_shadow_en_hwtcl", 1},
			{"core16_comp_timeout_en_hwtcl", 1},
			{"pcie_link_en_hwtcl", "1"},
			{"total_pcie_intf_hwtcl", "1"},
			{"pcie_ss_func_mode_hwtcl", "AXI-ST Data Mover"},
			{"top_topology_hwtcl", "Gen4 1x16"},
			{"core8_virtual_pf0_msix_enable_user_hwtcl", "0"},
			{"core8_pf0_pci_msix_table_size_hwtcl", "0"},
			{"core16_pf0_gen3_eq_pset_req_vec_hwtcl", "0x00000004"},
			{"core16_pf0_pcie_cap_port_num_hwtcl", "1"},
			{"core16_msix_en_table_hwtcl", 1},
			{"core16_msix_table_size_hwtcl", 7},
			{"core16_msix_bir_hwtcl", 4},
			{"core16_msix_bar_offset_hwtcl", 12288},
			{"core16_msix_vector_alloc_hwtcl", "Static"},
		},
		funcParams: []funcParam{
			{Name: "core16_{func_num}_expansion_base_address_register_hwtcl", Default: "Disabled"},
			{Name: "core16_{func_num}_sriov_vf_bar0_type_hwtcl", Default: "64-bit prefetchable memory"},
			{Name: "core16_{func_num}_sriov_vf_bar0_type_user_hwtcl", Default: "64-bit prefetchable memory"},
			{Name: "core16_{func_num}_bar0_type_user_hwtcl", Default: "64-bit prefetchable memory"},
			{Name: "core16_{func_num}_bar0_address_width_user_hwtcl", Default: 12, Override: "bar0_address_width"},
			{Name: "core16_virtual_{func_num}_msix_enable_user_hwtcl", Default: 1},
			{Name: "core16_virtual_{func_num}_exvf_msix_cap_enable_hwtcl", Default: 0},
			{Name: "core16_virtual_{func_num}_acs_cap_enable_hwtcl", Default: 1},
			{Name: "core16_{func_num}_vf_acs_cap_enable_hwtcl", Default: 1},
			{Name: "core16_exvf_msix_tablesize_{func_num}", Default: 0},
			{Name: "core16_exvf_msixtable_offset_{func_num}", Default: 0},
			{Name: "core16_exvf_msixtable_bir_{func_num}", Default: 0},
			{Name: "core16_exvf_msixpba_offset_{func_num}", Default: 0},
			{Name: "core16_exvf_msixpba_bir_{func_num}", Default: 0},
			{Name: "core16_{func_num}_bar4_type_user_hwtcl", Default: "64-bit prefetchable memory"},
			{Name: "core16_{func_num}_bar4_address_width_user_hwtcl", Default: 14, Override: "bar4_address_width"},
			{Name: "core16_{func_num}_sriov_vf_bar0_address_width_hwtcl", Default: 0},
			{Name: "core16_{func_num}_sriov_vf_bar4_type_hwtcl", Default: "Disabled"},
			{Name: "core16_{func_num}_sriov_vf_bar4_type_user_hwtcl", Default: "Disabled"},
			{Name: "core16_{func_num}_sriov_vf_bar4_address_width_hwtcl", Default: 0},
			{Name: "core16_{func_num}_pci_msix_table_size_hwtcl", Default: 6},
			{Name: "core16_{func_num}_pci_msix_table_offset_hwtcl", Default: 1536},
			{Name: "core16_{func_num}_pci_msix_bir_hwtcl", Default: 4},
			{Name: "core16_{func_num}_pci_msix_pba_offset_hwtcl", Default: 1550},
			{Name: "core16_{func_num}_pci_msix_pba_hwtcl", Default: 4},
			{Name: "core16_{func_num}_pci_msix_table_size_vfcomm_cs2_hwtcl", Default: 4},
			// Address translation: PASID, ATS and PRS capabilities.
			{Name: "core16_virtual_{func_num}_ats_cap_enable_hwtcl", Default: 0, Override: "ats_cap_enable"},
			{Name: "core16_{func_num}_vf_ats_cap_enable_hwtcl", Default: 0, Override: "vf_ats_cap_enable"},
			{Name: "core16_virtual_{func_num}_prs_ext_cap_enable_hwtcl", Default: 0, Override: "prs_ext_cap_enable"},
			{Name: "core16_virtual_{func_num}_pasid_cap_enable_hwtcl", Default: 0, Override: "pasid_cap_enable"},
			{Name: "core16_{func_num}_pasid_cap_max_pasid_width", Default: 0, Override: autoPrefix + "pasid_cap_max_pasid_width"},
			{Name: "core16_{func_num}_pci_type0_vendor_id_hwtcl", Default: "0x00008086", Override: "pci_type0_vendor_id"},
			{Name: "core16_{func_num}_pci_type0_vendor_id_user_hwtcl", Default: "0x00008086", Override: "pci_type0_vendor_id"},
			{Name: "core16_{func_num}_pci_type0_device_id_hwtcl", Default: "0x0000bcce", Override: "pci_type0_device_id"},
			{Name: "core16_{func_num}_revision_id_hwtcl", Default: "0x00000001", Override: "revision_id"},
			{Name: "core16_{func_num}_revision_id_user_hwtcl", Default: "0x00000001", Override: "revision_id"},
			{Name: "core16_{func_num}_class_code_hwtcl", Default: "0x00120000", Override: "class_code"},
			{Name: "core16_{func_num}_subsys_vendor_id_hwtcl", Default: "0x00008086", Override: "subsys_vendor_id"},
			{Name: "core16_{func_num}_subsys_dev_id_hwtcl", Default: "0x00001771", Override: "subsys_dev_id"},
			{Name: "core16_{func_num}_sriov_vf_device_id", Default: "0x0000bccf", Override: "sriov_vf_device_id"},
			{Name: "core16_exvf_subsysid_{func_num}", Default: "0x00001771", Override: "exvf_subsysid"},
		},
		multiVFFuncParams: []funcParam{
			{Name: "core16_virtual_{func_num}_msix_enable_user_hwtcl", Default: 1},
			{Name: "core16_virtual_{func_num}_exvf_msix_cap_enable_hwtcl", Default: 1},
			{Name: "core16_exvf_msixpba_bir_{func_num}", Default: 4},
			{Name: "core16_{func_num}_sriov_vf_bar0_address_width_hwtcl", Default: 12, Override: "vf_bar0_address_width"},
			{Name: "core16_{func_num}_sriov_vf_bar4_type_hwtcl", Default: "64-bit prefetchable memory"},
			{Name: "core16_{func_num}_sriov_vf_bar4_type_user_hwtcl", Default: "64-bit prefetchable memory"},
			{Name: "core16_{func_num}_sriov_vf_bar4_address_width_hwtcl", Default: 14},
			{Name: "core16_exvf_msix_tablesize_{func_num}", Default: 6},
			{Name: "core16_exvf_msixtable_offset_{func_num}", Default: 1536},
			{Name: "core16_exvf_msixtable_bir_{func_num}", Default: 4},
			{Name: "core16_exvf_msixpba_offset_{func_num}", Default: 1550},
		},
	},
}
