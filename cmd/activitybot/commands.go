package main

import (
	"activitybot/internal"
	"activitybot/internal/di"
	"activitybot/internal/services"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"io"
)

const (
	minCleanupDays = 1
	maxCleanupDays = 365
)

var errInvalidData = errors.New("data file failed validation")

func runServe(_ *cobra.Command, _ []string) error {
	app, err := di.InitApp(&flags)
	if err != nil {
		return err
	}
	return app.Run()
}

// withTools builds the offline dependency set, runs fn and releases it.
func withTools(fn func(tools *internal.Tools) error) error {
	tools, err := di.InitTools(&flags)
	if err != nil {
		return err
	}
	defer tools.Close()
	return fn(tools)
}

func runBackup(cmd *cobra.Command, _ []string) error {
	return withTools(func(tools *internal.Tools) error {
		path, err := tools.Archiver.Backup()
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s\n", path)
		return nil
	})
}

func runBackups(cmd *cobra.Command, _ []string) error {
	return withTools(func(tools *internal.Tools) error {
		files, err := tools.Archiver.Backups()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	})
}

func runRestore(cmd *cobra.Command, args []string) error {
	return withTools(func(tools *internal.Tools) error {
		doc, err := tools.Archiver.ReadBackup(args[0])
		if err != nil {
			return fmt.Errorf("unable to read backup: %w", err)
		}
		tools.Service.Restore(doc)
		result := tools.Service.Validate()
		if !result.IsValid {
			printIssues(cmd.ErrOrStderr(), result.Issues)
		}
		if err = tools.Service.Persist(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s into %s\n", args[0], tools.Config.Persistence.FilePath)
		return nil
	})
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	return withTools(func(tools *internal.Tools) error {
		path, err := tools.Archiver.Export(format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Export created: %s\n", path)
		return nil
	})
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	days, _ := cmd.Flags().GetInt("days")
	if days < minCleanupDays || days > maxCleanupDays {
		return fmt.Errorf("days must be between %d and %d, got %d", minCleanupDays, maxCleanupDays, days)
	}
	return withTools(func(tools *internal.Tools) error {
		removed, err := tools.Service.Cleanup(days)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries older than %d days\n", removed, days)
		return nil
	})
}

func runValidate(cmd *cobra.Command, _ []string) error {
	return withTools(func(tools *internal.Tools) error {
		result := tools.Service.Validate()
		if result.IsValid {
			fmt.Fprintln(cmd.OutOrStdout(), "Data file is valid")
			return nil
		}
		printIssues(cmd.OutOrStdout(), result.Issues)
		return errInvalidData
	})
}

func runStats(cmd *cobra.Command, _ []string) error {
	return withTools(func(tools *internal.Tools) error {
		stats, err := tools.Service.DataStats()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	})
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	return withTools(func(tools *internal.Tools) error {
		entries := tools.Service.Leaderboard(services.ClampLeaderboardLimit(limit))
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages tracked yet")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s  %d\n", e.Rank, e.UserID, e.Messages)
		}
		return nil
	})
}

func printIssues(w io.Writer, issues []string) {
	fmt.Fprintf(w, "Found %d issue(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
