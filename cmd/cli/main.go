// Command cli is the offline entry point: it reads a snapshot from a
// JSON file, runs the same pipeline the HTTP surface uses, and prints
// a tabular report to stdout.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varsity-sched/engine/internal/exporter"
	"github.com/varsity-sched/engine/internal/pipeline"
	"github.com/varsity-sched/engine/internal/snapshotio"
	"github.com/varsity-sched/engine/pkg/config"
	"github.com/varsity-sched/engine/pkg/logger"
)

var (
	inputFile  string
	outputFile string
	numOptions int
	seed       int64
	maxWorkers int
)

func main() {
	root := &cobra.Command{
		Use:   "varsity-sched",
		Short: "Generate a timetable and elective allocation from a snapshot file",
	}

	solve := &cobra.Command{
		Use:   "solve",
		Short: "solve one snapshot and print its report",
		Run:   runSolve,
	}
	solve.Flags().StringVarP(&inputFile, "file", "f", "", "path to the snapshot JSON file (required)")
	solve.Flags().StringVarP(&outputFile, "out", "o", "", "optional path to write the full JSON export")
	solve.Flags().IntVar(&numOptions, "options", 1, "number of Pareto weight profiles to solve (1 disables the sweep)")
	solve.Flags().Int64Var(&seed, "seed", 1, "random seed for allocation and local search")
	solve.Flags().IntVar(&maxWorkers, "workers", 4, "max concurrent solves during a Pareto sweep")
	root.AddCommand(solve)

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func runSolve(_ *cobra.Command, _ []string) {
	if inputFile == "" {
		log.Fatalf("--file is required")
	}

	snap, err := snapshotio.LoadFile(inputFile)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl, err := logger.New(cfg)
	if err != nil {
		zl = zap.NewNop()
	}

	start := time.Now()
	outcome, err := pipeline.Run(context.Background(), pipeline.Request{
		Snapshot:   snap,
		Config:     snap.Config,
		NumOptions: numOptions,
		Seed:       seed,
		MaxWorkers: maxWorkers,
	}, zl)
	elapsed := time.Since(start)

	if outcome == nil {
		log.Fatalf("solve failed: %v", err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	printReport(outcome, elapsed)

	if outputFile != "" {
		best := outcome.Schedules[0]
		export := exporter.Build(best.Schedule, best.Report, best.Profile, best.Quality)
		if err := exporter.WriteFile(export, outputFile); err != nil {
			log.Fatalf("write export: %v", err)
		}
		fmt.Printf("wrote %s\n", outputFile)
	}
}

func printReport(outcome *pipeline.Outcome, elapsed time.Duration) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "solved in %s, %d schedule(s)\n\n", elapsed.Round(time.Millisecond), len(outcome.Schedules))
	fmt.Fprintln(w, "profile\tstatus\tquality\tsatisfaction\tworkload\tutilization\telective_rate\tviolations")
	for _, sr := range outcome.Schedules {
		profile := sr.Profile
		if profile == "" {
			profile = "default"
		}
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%d\n",
			profile, sr.Status, sr.Quality,
			sr.Report.StudentSatisfaction, sr.Report.WorkloadBalance, sr.Report.RoomUtilization,
			sr.Report.ElectiveAllocationRate, sr.Report.ConstraintViolations)
	}
}
