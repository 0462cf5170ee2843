package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/uclan-tools/timetable-ics/timetable"
	"github.com/uclan-tools/timetable-ics/util"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a timetable page into an .ics file",
	Long: `Converts a timetable page into an .ics file. The page source is read
from a saved HTML file (--input) or fetched directly (--url).`,
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		url, _ := cmd.Flags().GetString("url")
		output, _ := cmd.Flags().GetString("output")
		reminder, _ := cmd.Flags().GetInt("reminder")
		timezone, _ := cmd.Flags().GetString("timezone")
		verbose, _ := cmd.Flags().GetBool("verbose")

		html, err := readPage(input, url)
		if err != nil {
			log.Fatalf("Could not read timetable page: %v\n", err)
		}

		loc, err := time.LoadLocation(timezone)
		if err != nil {
			log.Fatalf("Could not load timezone %q: %v\n", timezone, err)
		}

		result, err := timetable.NewGenerator(loc).Generate(html, reminder)
		if err != nil {
			log.Fatalf("Could not generate calendar: %v\n", err)
		}

		if output == "" {
			output = fmt.Sprintf("uclan_timetable-%s.ics", time.Now().Format("2006-01-02"))
		}
		if err := os.WriteFile(output, []byte(result.ICS), 0644); err != nil {
			log.Fatalf("Could not write to %s: %v\n", output, err)
		}

		fmt.Printf("Wrote %v events (%v occurrences) to %s\n", result.Events, result.Occurrences, output)
		if len(result.Warnings) > 0 {
			fmt.Printf("%v events had unresolved fields and may be missing from the output\n", len(result.Warnings))
			if verbose {
				fmt.Println(util.PrettyPrint(result.Warnings))
			}
		}
	},
}

// readPage resolves the page source from either an input file or a URL.
func readPage(input, url string) (string, error) {
	switch {
	case url != "":
		return timetable.FetchPage(url)
	case input != "":
		b, err := os.ReadFile(input)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("either --input or --url is required")
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("input", "i", "", "Path to a saved timetable HTML file")
	convertCmd.Flags().StringP("url", "u", "", "URL of the timetable page to fetch")
	convertCmd.Flags().StringP("output", "o", "", "Output .ics path (defaults to uclan_timetable-<date>.ics)")
	convertCmd.Flags().IntP("reminder", "r", timetable.DefaultReminderMinutes, "Reminder lead time in minutes (0 disables alarms)")
	convertCmd.Flags().StringP("timezone", "z", "Europe/London", "IANA timezone of the institution")
	convertCmd.Flags().BoolP("verbose", "v", false, "Print extraction warnings")
}
