package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/uclan-tools/timetable-ics/applog"
	"github.com/uclan-tools/timetable-ics/config"
	"github.com/uclan-tools/timetable-ics/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP conversion API",
	Long: `Runs an HTTP server exposing POST /api/generate-ics, which accepts a
JSON body with the timetable page HTML and responds with the generated
.ics file. Settings come from an optional YAML config file, overridden
by TTICS_* environment variables (a .env file is honoured).`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		listen, _ := cmd.Flags().GetString("listen")
		debug, _ := cmd.Flags().GetBool("debug")

		// Best effort; a missing .env file is fine.
		godotenv.Load()

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Could not load config: %v\n", err)
		}
		cfg.ApplyEnv()
		if listen != "" {
			cfg.Listen = listen
		}

		if debug {
			applog.SetLevel(applog.LevelDebug)
		}

		srv, err := server.NewServer(cfg)
		if err != nil {
			log.Fatalf("Could not create server: %v\n", err)
		}
		if err := srv.ListenAndServe(); err != nil {
			log.Fatalf("Server stopped: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "Path to a YAML config file")
	serveCmd.Flags().StringP("listen", "l", "", "Listen address (overrides config)")
	serveCmd.Flags().BoolP("debug", "d", false, "Enable debug logging")
}
