package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/model"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/report"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/scan"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/watch"
)

var (
	watchJSON     bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <model>",
	Short: "Re-scan a model whenever it changes on disk",
	Long: `Watch scans the model, reports, and then re-scans after every change
until interrupted. The model is never modified; use it to keep an eye
on host intersections while the model is edited elsewhere.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "write reports as JSON")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce,
		"settle time before a change triggers a re-scan")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	rescan := func() error {
		doc, err := model.Load(path)
		if err != nil {
			return err
		}
		scans, err := scan.ScanEquipment(doc)
		if err != nil {
			return err
		}
		rep := report.Build(docTitle(path), "", scans, nil)
		return writeReport(os.Stdout, rep, watchJSON)
	}
	if err := rescan(); err != nil {
		return err
	}

	w, err := watch.New(path, watchDebounce, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("stopping watch")
		cancel()
	}()

	return w.Run(ctx, rescan)
}
