package main

import (
	"activitybot/internal/structures"
	"fmt"
	"github.com/spf13/cobra"
	"os"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "activitybot",
	Short: "Chat activity tracker with scheduled daily and weekly reports",
	Long: `activitybot counts messages, joins and leaves per user and day,
keeps the totals in a flat JSON file and posts daily and weekly
activity reports to a chat channel.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the event API and the report scheduler",
	RunE:  runServe,
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a timestamped copy of the data file",
	RunE:  runBackup,
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List existing backups, oldest first",
	RunE:  runBackups,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-file]",
	Short: "Replace the data file with the contents of a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity data as json or csv",
	RunE:  runExport,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete message and member event entries older than the given number of days",
	RunE:  runCleanup,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the data file for structural problems",
	RunE:  runValidate,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print data file statistics",
	RunE:  runStats,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the all-time message leaderboard",
	RunE:  runLeaderboard,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging")

	exportCmd.Flags().StringP("format", "f", "json", "export format: json or csv")
	cleanupCmd.Flags().Int("days", 30, "number of days to keep (1-365)")
	leaderboardCmd.Flags().IntP("limit", "n", 10, "number of entries (1-25)")

	rootCmd.AddCommand(serveCmd, backupCmd, backupsCmd, restoreCmd, exportCmd, cleanupCmd, validateCmd, statsCmd, leaderboardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
