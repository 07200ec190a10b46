package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ofs/ofss-config/ipfile"
	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/util"
)

var ipinfoOutputDir string

var ipinfoCmd = &cobra.Command{
	Use:   "ipinfo FILE.ip...",
	Args:  cobra.MinimumNArgs(1),
	Short: "Prints the device information of Quartus .ip files",
	Long: `Prints the device information of Quartus .ip files and writes a readable dump
<name>_readable.ip of their module and system parameters, sorted by name.
Arguments may be comma separated lists.`,
	Run: runIPInfo,
}

func init() {
	ipinfoCmd.Flags().StringVarP(&ipinfoOutputDir, "output-dir", "o", ".", "Directory the readable dumps are written to")
	rootCmd.AddCommand(ipinfoCmd)
}

func runIPInfo(cmd *cobra.Command, args []string) {
	for _, p := range util.SplitList(args) {
		file, err := ipfile.Read(p)
		if err != nil {
			log.Fatal("%s\n", err)
		}

		log.Log("%s (%s %s):\n", file.Path, file.Name, file.Version)
		log.IndentationLevel = 1
		for _, entry := range file.Info() {
			log.Log("%s: %s\n", entry.Key, entry.Value)
		}
		log.IndentationLevel = 0

		readable, err := file.WriteReadable(ipinfoOutputDir)
		if err != nil {
			log.Fatal("%s\n", err)
		}
		log.Success("Wrote '%s'.\n", readable)
	}
}
