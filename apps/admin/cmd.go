package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *sql.DB
	svc    schedule.Service
	copier schedule.Copier
	out    io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "RS School schedule administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.AddCommand(cli.migrateCmd(), cli.scheduleCmd(), cli.copyScheduleCmd())
	return root
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	return root.ExecuteContext(ctx)
}

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate COMMAND [ARGS...]",
		Short:              "Run a goose migration command (up, down, status, ...)",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.migrate(cmd.Context(), args)
		},
	}
}

func (cli *commandLine) scheduleCmd() *cobra.Command {
	var courseID, studentID int

	cmd := &cobra.Command{
		Use:   "schedule --course ID [--student ID]",
		Short: "Print the schedule of a course, as seen by a student when one is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if courseID <= 0 || studentID < 0 {
				_ = cmd.Usage()
				return errHelp
			}
			items, err := cli.svc.ComputeSchedule(cmd.Context(), courseID, studentID)
			if err != nil {
				return err
			}
			return printSchedule(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().IntVar(&courseID, "course", 0, "The course id")
	cmd.Flags().IntVar(&studentID, "student", 0, "The student id (optional)")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

func (cli *commandLine) copyScheduleCmd() *cobra.Command {
	var fromID, toID int

	cmd := &cobra.Command{
		Use:   "copy-schedule --from ID --to ID",
		Short: "Copy the tasks, events and team distributions of a course into another one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromID <= 0 || toID <= 0 {
				_ = cmd.Usage()
				return errHelp
			}
			if err := cli.copier.CopyFromTo(cmd.Context(), fromID, toID); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "schedule of course %d copied to course %d\n", fromID, toID)
			return err
		},
	}
	cmd.Flags().IntVar(&fromID, "from", 0, "The source course id")
	cmd.Flags().IntVar(&toID, "to", 0, "The target course id")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printSchedule(out io.Writer, items []schedule.Item) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTAG\tSTATUS\tSTART\tEND\tSCORE")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Name, item.Tag, item.Status,
			formatDate(item.StartDate), formatDate(item.EndDate), formatScore(item.Score, item.MaxScore),
		)
	}
	return w.Flush()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func formatScore(score, maxScore *float64) string {
	switch {
	case score == nil:
		return "-"
	case maxScore == nil:
		return fmt.Sprintf("%g", *score)
	default:
		return fmt.Sprintf("%g/%g", *score, *maxScore)
	}
}
