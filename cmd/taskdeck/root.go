package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/state"
	"taskdeck/internal/store"
	"taskdeck/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Terminal client for the task management backend",
	Long: `taskdeck is a terminal UI and CLI for a task/project/CRM backend:
task CRUD with comments, attachments and dependencies, project cards,
member relationship views, deal pipeline, and report exports.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(nil)
	},
}

// runTUI starts the full-screen application. prepare, when set, runs
// against the state database before the program starts, so commands
// can plant one-shot navigation flags.
func runTUI(prepare func(*state.DB) error) error {
	cfg := config.Load()

	stateDB, err := state.Open(cfg.StateDBPath)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer stateDB.Close()

	if prepare != nil {
		if err := prepare(stateDB); err != nil {
			return err
		}
	}

	if cfg.Debug {
		f, err := tea.LogToFile("taskdeck-debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	app := ui.NewApp(store.New(client), stateDB)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}

var openCmd = &cobra.Command{
	Use:   "open <task-id>",
	Short: "Start the UI on a specific task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(func(db *state.DB) error {
			return db.PutFlag(state.FlagOpenTaskID, args[0])
		})
	},
}

var newCmd = &cobra.Command{
	Use:       "new [task|project|objective]",
	Short:     "Start the UI on the create form",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"task", "project", "objective"},
	RunE: func(cmd *cobra.Command, args []string) error {
		flag := state.FlagOpenNewTask
		if len(args) == 1 {
			switch args[0] {
			case "project":
				flag = state.FlagOpenNewProject
			case "objective":
				flag = state.FlagOpenNewObjective
			}
		}
		return runTUI(func(db *state.DB) error {
			return db.PutFlag(flag, "1")
		})
	},
}

var memberUICmd = &cobra.Command{
	Use:   "whois <member-id>",
	Short: "Start the UI on a member page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(func(db *state.DB) error {
			return db.PutFlag(state.FlagEditMemberID, args[0])
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskdeck %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(memberUICmd)
	rootCmd.SetOut(os.Stdout)
}
