package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timetable-ics",
	Short: "Converts a UCLan student timetable page into an iCalendar feed",
	Long: `Converts the saved HTML source of a UCLan student timetable page into a
standard iCalendar (.ics) file, with one dated event per class session
across the term. The week legend of the page is used to resolve week
numbers into calendar dates.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
