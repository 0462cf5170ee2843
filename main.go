package main

import "github.com/uclan-tools/timetable-ics/cmd"

func main() {
	cmd.Execute()
}
