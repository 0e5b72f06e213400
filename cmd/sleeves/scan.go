package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/report"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/scan"
)

var (
	scanJSON bool
	scanOnly []int64
)

var scanCmd = &cobra.Command{
	Use:   "scan <model>",
	Short: "Scan a model for equipment and the hosts it intersects",
	Long: `Scan loads a model document, finds every mechanical equipment element
and reports the walls and beams its bounding box intersects, together
with its sleeve parameters. The model is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "write the report as JSON")
	scanCmd.Flags().Int64SliceVar(&scanOnly, "equipment", nil, "scan only these equipment element ids")
}

func runScan(cmd *cobra.Command, args []string) error {
	doc, err := model.Load(args[0])
	if err != nil {
		return err
	}
	scans, err := scan.ScanEquipment(doc, elementIDs(scanOnly)...)
	if err != nil {
		return err
	}
	log.Info("scan complete",
		zap.String("model", args[0]),
		zap.Int("equipment", len(scans)))

	rep := report.Build(docTitle(args[0]), "", scans, nil)
	return writeReport(os.Stdout, rep, scanJSON)
}
