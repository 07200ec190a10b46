package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ofs/ofss-config/log"
)

var rootCmd = &cobra.Command{
	Use:   "ofss-config",
	Short: "The OFS settings configuration tool (ofss-config)",
	Long: `The OFS settings configuration tool (ofss-config) reads OFSS files describing
the IPs of an OFS FPGA design, validates them and generates the Quartus .ip files of
the IOPLL, PCIe, memory and HSSI subsystems with ip-deploy.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
