/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package cmd

/*****************************************************************************************************************/

import (
	"github.com/spf13/cobra"

	"github.com/cascade-survey/assoc/internal/associate"
)

/*****************************************************************************************************************/

var rootCommand = &cobra.Command{
	Use:   "assoc",
	Short: "Cascade Survey Association CLI is a command-line tool for cross-epoch radio-transient source association.",
	Long:  "Cascade Survey Association CLI is a command-line tool for cross-epoch radio-transient source association.",
}

/*****************************************************************************************************************/

func init() {
	rootCommand.AddCommand(associate.AssociateCommand)
}

/*****************************************************************************************************************/

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		panic(err)
	}
}

/*****************************************************************************************************************/
