package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Args:  cobra.NoArgs,
	Short: "Inspects manifests written by deploy --manifest",
	Long:  `Inspects manifests written by deploy --manifest.`,
}

func init() {
	diffCommand := &cobra.Command{
		Use:   "diff newManifest oldManifest",
		Args:  cobra.ExactArgs(2),
		Short: "Diffs two manifests and lists their differences per IP",
		Long:  `Diffs two manifests and lists the parameters that were added, removed or changed per IP.`,
		Run:   runManifestDiff,
	}
	manifestCmd.AddCommand(diffCommand)
	rootCmd.AddCommand(manifestCmd)
}

func runManifestDiff(cmd *cobra.Command, args []string) {
	manifestNew, err := manifest.Read(args[0])
	if err != nil {
		log.Fatal("%s\n", err)
	}
	manifestOld, err := manifest.Read(args[1])
	if err != nil {
		log.Fatal("%s\n", err)
	}

	printManifestDiff(manifest.Diff(manifestNew, manifestOld))
}

func printManifestDiff(diff manifest.DiffResult) {
	const RED_DASH string = "\u001b[31;1m-\u001b[0m"
	const GREEN_PLUS string = "\u001b[32;1m+\u001b[0m"

	log.IndentationLevel = 0

	if !diff.Differ {
		log.Log("Manifests are identical.\n")
		return
	}

	if diff.RevisionChanged {
		log.Log("Target revision changed.\n\n")
	}

	if len(diff.AddedIPs) != 0 {
		log.Log("Added IPs:\n")
		for _, added := range diff.AddedIPs {
			log.IndentationLevel = 1
			log.Log("%s %s (%s)\n", GREEN_PLUS, added.IPFile, added.Name)
		}
		log.IndentationLevel = 0
		log.Log("\n")
	}

	if len(diff.RemovedIPs) != 0 {
		log.Log("Removed IPs:\n")
		for _, removed := range diff.RemovedIPs {
			log.IndentationLevel = 1
			log.Log("%s %s (%s)\n", RED_DASH, removed.IPFile, removed.Name)
		}
		log.IndentationLevel = 0
		log.Log("\n")
	}

	if len(diff.ModifiedIPs) != 0 {
		log.Log("Modified IPs:\n")
		for _, modified := range diff.ModifiedIPs {
			log.IndentationLevel = 1
			log.Log("%s:\n", modified.IPFile)
			log.IndentationLevel = 2
			for _, change := range modified.Changes {
				switch {
				case change.Old == nil:
					log.Log("%s %s\n", GREEN_PLUS, change)
				case change.New == nil:
					log.Log("%s %s\n", RED_DASH, change)
				default:
					log.Log("%s\n", change)
				}
			}
			log.IndentationLevel = 0
		}
		log.Log("\n")
	}
}
