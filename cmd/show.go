package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/ofss"
)

var showYaml bool

var showCmd = &cobra.Command{
	Use:   "show",
	Args:  cobra.NoArgs,
	Short: "Prints the merged configuration of OFSS files",
	Long: `Reads the given OFSS files and the files they include, validates them and prints
the merged configuration of every IP type.`,
	Run: runShow,
}

func init() {
	addOfssFlags(showCmd)
	showCmd.Flags().BoolVar(&showYaml, "yaml", false, "Print the configuration as YAML")
	rootCmd.AddCommand(showCmd)
}

// yamlConfig groups the instances of each IP type by source file.
type yamlConfig map[string][]yamlInstance

type yamlInstance struct {
	Source   string                       `yaml:"source"`
	Sections map[string]map[string]string `yaml:"sections"`
}

func toYamlConfig(cfg ofss.MergedConfig) yamlConfig {
	result := yamlConfig{}
	for ipType, instances := range cfg {
		for _, inst := range instances {
			result[ipType] = append(result[ipType], yamlInstance{Source: inst.Source, Sections: inst.Map()})
		}
	}
	return result
}

func runShow(cmd *cobra.Command, args []string) {
	cfg, project := loadProject(cmd)

	if showYaml {
		data, err := yaml.Marshal(toYamlConfig(cfg))
		if err != nil {
			log.Fatal("Failed to encode configuration: %s\n", err)
		}
		log.Log("%s", data)
		return
	}

	log.Log("Platform: %s, Family: %s, Part: %s\n", project.Platform, project.Family, project.Part)
	if project.PClk != "" {
		log.Log("p_clk: %s MHz\n", project.PClk)
	}
	log.Log("\n")
	printConfig(cfg)
}
