package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/ofss"
)

var ofssFiles []string
var iniFiles []string
var platformOverride string

// addOfssFlags registers the input file flags shared by commands reading OFSS files.
// --ini is an older name of --ofss.
func addOfssFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&ofssFiles, "ofss", []string{}, "OFSS files to read (may be repeated or comma separated)")
	cmd.Flags().StringArrayVar(&iniFiles, "ini", []string{}, "Same as --ofss")
	cmd.Flags().StringVar(&platformOverride, "platform", "", "Overrides the platform of the [settings] section")
	cmd.Flags().MarkHidden("ini")
}

func inputFiles() []string {
	inputs := append([]string{}, ofssFiles...)
	return append(inputs, iniFiles...)
}

// loadProject reads and validates the OFSS files given on the command line.
func loadProject(cmd *cobra.Command) (ofss.MergedConfig, *ofss.ProjectSettings) {
	inputs := inputFiles()
	if len(inputs) == 0 {
		log.Fatal("No OFSS files given. Use --ofss.\n")
	}

	cfg, err := ofss.Load(inputs)
	if err != nil {
		log.Fatal("%s\n", err)
	}

	project, err := ofss.Validate(cfg)
	if err != nil {
		log.Fatal("%s\n", err)
	}

	if cmd.Flags().Changed("platform") && platformOverride != project.Platform {
		log.Warning("Overriding platform '%s' with '%s'.\n", project.Platform, platformOverride)
		project.Platform = platformOverride
	}
	return cfg, project
}

func printConfig(cfg ofss.MergedConfig) {
	for _, ipType := range cfg.Types() {
		log.Log("%s:\n", ipType)
		for _, inst := range cfg[ipType] {
			log.IndentationLevel = 1
			log.Log("%s\n", inst.Source)
			for _, section := range inst.Sections() {
				log.IndentationLevel = 2
				log.Log("[%s]\n", section.Name)
				log.IndentationLevel = 3
				for _, key := range section.Keys() {
					value, _ := section.Get(key)
					log.Log("%s = %s\n", key, value)
				}
			}
		}
		log.IndentationLevel = 0
	}
}
