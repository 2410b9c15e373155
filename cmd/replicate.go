package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lossq/lossq/sim"
)

var replications int // Number of independent runs

var replicateCmd = &cobra.Command{
	Use:   "replicate",
	Short: "Run independent seeded replications and report mean and stddev",
	Long:  "Runs --replications engines seeded seed, seed+1, ... and aggregates acceptance ratio, refusal probability and absolute bandwidth.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, s, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		summary, err := sim.Replicate(ctx, cfg, s, replications)
		if err != nil {
			logrus.Fatalf("Replication failed: %v", err)
		}
		printReplication(os.Stdout, summary)
	},
}

func printReplication(out io.Writer, r *sim.ReplicationSummary) {
	fmt.Fprintln(out, "=== Replication Summary ===")
	fmt.Fprintf(out, "Replications: %d (seeds %d..%d)\n", r.Replications, r.Seed, r.Seed+int64(r.Replications)-1)
	fmt.Fprintf(out, "Proportion of processed requests: %.6f ± %.6f\n", r.AcceptanceRatio.Mean, r.AcceptanceRatio.StdDev)
	fmt.Fprintf(out, "Probability of refuse: %.6f ± %.6f\n", r.RefusalProbability.Mean, r.RefusalProbability.StdDev)
	fmt.Fprintf(out, "Absolute bandwidth: %.6f ± %.6f\n", r.Throughput.Mean, r.Throughput.StdDev)
}

func init() {
	registerSimFlags(replicateCmd)
	replicateCmd.Flags().IntVar(&replications, "replications", 30, "Number of independent runs")

	rootCmd.AddCommand(replicateCmd)
}
