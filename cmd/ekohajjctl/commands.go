package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zainulsyai/eko-hajj/cmd/ekohajjctl/cli"
)

var (
	redisAddr     string
	scheduledSize int

	rootCmd = &cobra.Command{
		Use:           "ekohajjctl",
		Short:         "Manage EKO-HAJJ background jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	jobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "Trigger and inspect queued jobs",
	}

	triggerCmd = &cobra.Command{
		Use:       "trigger [warmup|reseed]",
		Short:     "Enqueue a job with its default payload",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{cli.JobWarmup, cli.JobReseed},
		RunE:      runTrigger,
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show default queue counters",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	scheduledCmd = &cobra.Command{
		Use:   "scheduled",
		Short: "List scheduled tasks",
		Args:  cobra.NoArgs,
		RunE:  runScheduled,
	}
)

func init() {
	defaultAddr := os.Getenv("REDIS_ADDR")
	if defaultAddr == "" {
		defaultAddr = "127.0.0.1:6379"
	}
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", defaultAddr, "Redis address used by the job queue")
	scheduledCmd.Flags().IntVar(&scheduledSize, "size", 10, "Number of tasks to list")

	jobsCmd.AddCommand(triggerCmd, statsCmd, scheduledCmd)
	rootCmd.AddCommand(jobsCmd)
}

func withOperator(fn func(*cli.Operator) error) error {
	c, err := cli.Dial(redisAddr)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(c)
}

func runTrigger(cmd *cobra.Command, args []string) error {
	return withOperator(func(c *cli.Operator) error {
		info, err := c.Trigger(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
		return nil
	})
}

func runStats(cmd *cobra.Command, _ []string) error {
	return withOperator(func(c *cli.Operator) error {
		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "QUEUE\tPENDING\tACTIVE\tSCHEDULED\tRETRY")
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
		return w.Flush()
	})
}

func runScheduled(cmd *cobra.Command, _ []string) error {
	return withOperator(func(c *cli.Operator) error {
		tasks, err := c.Scheduled(cmd.Context(), scheduledSize)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tNEXT")
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Type, t.NextProcessAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	})
}
