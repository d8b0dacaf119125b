package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/derive"
	"taskdeck/internal/report"
)

var reportFlags struct {
	reportType string
	value      string
	status     string
	dateRange  string
	format     string
	output     string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a task report and print or export it",
	Example: `  taskdeck report --type assignee --value "Jane Doe" --format csv -o report.csv
  taskdeck report --type status --value Open --range week`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout)

		tasks, err := client.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch tasks: %w", err)
		}

		opts := report.Options{
			Type:   report.Type(reportFlags.reportType),
			Value:  reportFlags.value,
			Status: reportFlags.status,
			Range:  derive.DateRange(reportFlags.dateRange),
		}
		// The status report type takes its value via Status.
		if opts.Type == report.TypeStatus && opts.Status == "" {
			opts.Status = reportFlags.value
		}
		now := time.Now()
		rows := report.Build(tasks, opts, now)

		var content string
		switch reportFlags.format {
		case "csv":
			content = report.CSV(rows)
		case "text":
			content = report.Text(rows, opts, now)
		case "table":
			sum := report.Summarize(rows, now)
			content = fmt.Sprintf("%d tasks • %d completed • %d active • %d overdue\n\n%s",
				sum.Total, sum.Completed, sum.Active, sum.Overdue,
				report.Table(rows, now))
		default:
			return fmt.Errorf("unknown format %q (csv, text, table)", reportFlags.format)
		}

		if reportFlags.output != "" {
			if err := os.WriteFile(reportFlags.output, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			cmd.Printf("Report written to %s\n", reportFlags.output)
			return nil
		}
		cmd.Print(content)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFlags.reportType, "type", "all",
		"report type: all, assignee, customer, status, priority")
	reportCmd.Flags().StringVar(&reportFlags.value, "value", "",
		"filter value for the chosen type")
	reportCmd.Flags().StringVar(&reportFlags.status, "status", "",
		"secondary status filter")
	reportCmd.Flags().StringVar(&reportFlags.dateRange, "range", "",
		"date bucket: today, week, month, overdue")
	reportCmd.Flags().StringVar(&reportFlags.format, "format", "table",
		"output format: csv, text, table")
	reportCmd.Flags().StringVarP(&reportFlags.output, "output", "o", "",
		"write to file instead of stdout")
}
