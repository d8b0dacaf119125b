package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/derive"
	"taskdeck/internal/models"
	"taskdeck/internal/report"
	"taskdeck/internal/store"
)

var memberCmd = &cobra.Command{
	Use:   "member <id>",
	Short: "Show a team member and their task relationships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout)
		ctx := cmd.Context()

		member, err := client.GetMember(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch member: %w", err)
		}
		tasks, err := client.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("fetch tasks: %w", err)
		}

		assigned, related := derive.Relationship(member, tasks)

		cmd.Printf("%s", member.Name)
		if member.Role != "" {
			cmd.Printf(" - %s", member.Role)
		}
		if member.Department != "" {
			cmd.Printf(" (%s)", member.Department)
		}
		cmd.Println()
		if member.Email != "" {
			cmd.Println(member.Email)
		}
		cmd.Printf("\nAssigned (%d):\n", len(assigned))
		printTaskLines(cmd, assigned)
		cmd.Printf("\nRelated (%d):\n", len(related))
		printTaskLines(cmd, related)
		return nil
	},
}

func printTaskLines(cmd *cobra.Command, tasks []models.Task) {
	now := time.Now()
	for _, t := range tasks {
		line := fmt.Sprintf("  [%s] %s", t.Status, t.Title)
		if t.FollowUpDate != "" {
			line += "  due " + t.FollowUpDate
		}
		if derive.IsOverdue(t, now) {
			line += "  OVERDUE"
		}
		cmd.Println(line)
	}
	if len(tasks) == 0 {
		cmd.Println("  (none)")
	}
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Print the discussion topics summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		st := store.New(api.New(cfg.APIBaseURL, cfg.HTTPTimeout))

		if err := st.ReloadTopics(cmd.Context()); err != nil {
			return fmt.Errorf("fetch topics: %w", err)
		}
		cmd.Print(report.TopicsText(st.Topics(), time.Now()))
		return nil
	},
}
