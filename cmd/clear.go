package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clears pushed timetable events from a Google Calendar",
	Long: `Clears a Google Calendar of the events previously created by the push
command. Only those events are targeted, leaving personal events intact.`,
	Run: func(cmd *cobra.Command, args []string) {
		calendarID, _ := cmd.Flags().GetString("calendarID")
		tokenPath, _ := cmd.Flags().GetString("tokenPath")

		c, err := newGoogleCalendar(calendarID, tokenPath)
		if err != nil {
			log.Fatalf("Could not create Google Calendar instance: %v\n", err)
		}
		if err := c.Clear(); err != nil {
			log.Fatalf("Could not clear Google Calendar: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().StringP("calendarID", "c", "primary", "Google Calendar calendar ID")
	clearCmd.Flags().StringP("tokenPath", "t", "token.json", "The path to a Google OAuth token file")
}
