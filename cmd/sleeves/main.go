// Command sleeves scans building model documents for mechanical
// equipment and places circular sleeve openings through the beams and
// walls each piece intersects.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/config"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/logger"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/report"
)

const version = "0.3.0"

var (
	cfgFile  string
	logLevel string
	logFile  string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sleeves",
	Short: "Sleeve placement for building model documents",
	Long: `sleeves scans a building model for mechanical equipment, finds the
walls and beams each piece intersects, and places circular sleeve
openings on the best-matching beam faces.

Models are JSON or YAML documents; see examples/ for the schema.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// setup loads the configuration and builds the logger shared by every
// command. Only flags the user actually set override the file.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	pf := rootCmd.PersistentFlags()
	if pf.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if pf.Changed("log-file") {
		cfg.Logging.LogFile = logFile
	}

	var file logger.FileConfig
	if cfg.Logging.LogFile != "" {
		file = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	log = logger.New(cfg.Logging.Level, file, true)
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if log != nil {
		_ = log.Sync()
	}
}

func init() {
	// Assigned here rather than in the composite literal: setup refers
	// back to rootCmd, which would otherwise be an initialization cycle.
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRun = teardown

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"configuration file (default ./sleeves.yaml, then the user config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also log to this file, with rotation")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// elementIDs converts raw flag values to element ids.
func elementIDs(raw []int64) []model.ElementID {
	ids := make([]model.ElementID, 0, len(raw))
	for _, v := range raw {
		ids = append(ids, model.ElementID(v))
	}
	return ids
}

// docTitle names a report after the document file.
func docTitle(path string) string {
	return filepath.Base(path)
}

// writeReport renders a report in the selected format.
func writeReport(w io.Writer, rep *report.Report, asJSON bool) error {
	if asJSON {
		return report.WriteJSON(w, rep)
	}
	return report.WriteText(w, rep)
}

// saveReport writes the JSON form of a report to path.
func saveReport(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report %s: %w", path, err)
	}
	if err := report.WriteJSON(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
