/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package main

import (
	"github.com/cascade-survey/assoc/cmd"
)

/*****************************************************************************************************************/

func main() {
	cmd.Execute()
}

/*****************************************************************************************************************/
