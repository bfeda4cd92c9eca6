package commands

import (
	"github.com/ak033/462lab5/src/config"
	"github.com/spf13/cobra"
)

var _config = config.NewDefaultConfig()

// RootCmd is the root command for lsrd
var RootCmd = &cobra.Command{
	Use:              "lsrd",
	Short:            "link-state routing daemon",
	TraverseChildren: true,
}

func init() {
	RootCmd.AddCommand(
		NewRunCmd(),
		VersionCmd,
	)
}
