package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hnguyen/codeassist/internal/app"
	"github.com/hnguyen/codeassist/internal/editor"
	"github.com/hnguyen/codeassist/internal/history"
	"github.com/hnguyen/codeassist/internal/model"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "codeassist <file>",
	Short: "Terminal code viewer with an AI assistant",
	Long: `codeassist opens a source file in a terminal viewer and lets you ask
an AI assistant to fix, optimize, explain, or brainstorm about the code,
then apply the suggestion back into the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(args[0])
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(),
		"path to the configuration file",
	)
	rootCmd.AddCommand(keyCmd)
}

// runApp loads configuration, opens the file, and starts the TUI.
func runApp(path string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so diagnostics go to a log file.
	if logFile := openLogFile(); logFile != nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	buffer, err := editor.Load(path)
	if err != nil {
		return err
	}

	var store history.Store
	if cfg.History.Enabled {
		s, err := history.NewSQLiteStore(model.DefaultDBPath())
		if err != nil {
			log.Printf("history store unavailable: %v", err)
		} else {
			store = s
			defer s.Close()
		}
	}

	program := tea.NewProgram(
		app.New(buffer, cfg, configPath, store),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// openLogFile opens the diagnostic log for appending. Returns nil when the
// file cannot be opened; logging then stays on stderr.
func openLogFile() *os.File {
	path := model.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return f
}
