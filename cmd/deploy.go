package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ofs/ofss-config/config"
	"github.com/ofs/ofss-config/ip"
	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/manifest"
	"github.com/ofs/ofss-config/util"
	"github.com/ofs/ofss-config/workspace"
)

var deployDebug bool
var deployDryRun bool
var deployManifest string

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Args:  cobra.NoArgs,
	Short: "Generates the IP files described by OFSS files",
	Long: `Reads the given OFSS files, validates them and runs ip-deploy once per configured IP
to generate its .ip file below the target directory ($OFS_ROOTDIR by default).`,
	Run: runDeploy,
}

func init() {
	addOfssFlags(deployCmd)
	deployCmd.Flags().String(config.KeyTarget, "", "Root directory the IP files are generated in (default $OFS_ROOTDIR)")
	deployCmd.Flags().String(config.KeyIPDeploy, "ip-deploy", "The ip-deploy binary")
	deployCmd.Flags().String(config.KeyCommandLog, "ip_deploy_cmds.log", "File receiving the ip-deploy commands with --debug")
	deployCmd.Flags().BoolVar(&deployDebug, "debug", false, "Write every ip-deploy command to the command log")
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "Print the ip-deploy commands without running them")
	deployCmd.Flags().StringVar(&deployManifest, "manifest", "", "Write a manifest of the resolved IP parameters to this file")
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		log.Fatal("%s\n", err)
	}

	merged, project := loadProject(cmd)
	if log.Verbose {
		printConfig(merged)
	}

	target, err := cfg.TargetRoot()
	if err != nil {
		log.Fatal("%s\n", err)
	}

	resolvers, err := ip.Instantiate(merged, project, target)
	if err != nil {
		log.Fatal("%s\n", err)
	}

	var commandLog io.Writer
	if deployDebug && !deployDryRun {
		file, err := os.Create(cfg.CommandLog)
		if err != nil {
			log.Fatal("Failed to create command log: %s\n", err)
		}
		defer file.Close()
		commandLog = file
	}

	log.Log("Generating IPs for %s in '%s'.\n", project.Platform, target)
	updated, err := ip.Deploy(resolvers, ip.Options{
		Runner:     ip.ExecRunner{Binary: cfg.IPDeploy},
		DryRun:     deployDryRun,
		CommandLog: commandLog,
	})
	if err != nil {
		log.Fatal("%s\n", err)
	}

	rev := targetRevision(target)
	if deployManifest != "" {
		writeManifest(deployManifest, target, rev, resolvers)
	}

	log.Log("\n")
	log.Success("OFS IP Configuration Tool Complete for:\n")
	log.IndentationLevel = 1
	for _, input := range util.SplitList(inputFiles()) {
		log.Log("%s\n", input)
	}
	log.IndentationLevel = 0

	if rev != nil {
		log.Log("Target revision: %s\n", rev)
	}

	if deployDryRun {
		log.Log("Dry run, nothing was updated.\n")
		return
	}
	log.Log("Updated the following:\n")
	for _, file := range updated {
		log.Log(" - %s\n", file)
	}
	if commandLog != nil {
		log.Log("ip-deploy commands written to '%s'.\n", cfg.CommandLog)
	}
}

// targetRevision returns the git revision of the target tree, nil if there is none.
func targetRevision(target string) *workspace.Revision {
	rev, err := workspace.CurrentRevision(target)
	if err != nil {
		log.Debug("No revision for '%s': %s.\n", target, err)
		return nil
	}
	return rev
}

func writeManifest(p, target string, rev *workspace.Revision, resolvers []ip.Resolver) {
	m := manifest.Generate(toolVersion, target, rev, util.SplitList(inputFiles()), resolvers)

	if util.FileExists(p) {
		previous, err := manifest.Read(p)
		if err != nil {
			log.Warning("Not comparing against the previous manifest: %s.\n", err)
		} else {
			log.Log("Changes since the previous manifest:\n")
			printManifestDiff(manifest.Diff(m, previous))
		}
	}

	if err := manifest.Write(p, m); err != nil {
		log.Fatal("%s\n", err)
	}
	log.Success("Wrote manifest '%s'.\n", p)
}
