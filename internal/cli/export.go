package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.db]",
	Short: "Export projects, tasks and events to a SQLite database",
	Long:  "Writes projects, tasks (with their current state and description) and every event into SQLite tables for ad-hoc querying.\nRe-exporting to the same file replaces the previous rows.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}

	stats, err := s.ExportSQLite(args[0])
	if err != nil {
		log.WithField("db", args[0]).WithError(err).Error("export failed")
		return err
	}
	log.WithFields(log.Fields{"db": args[0], "projects": stats.Projects, "tasks": stats.Tasks, "events": stats.Events}).Info("exported")

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects, %d tasks, %d events to %s\n",
		stats.Projects, stats.Tasks, stats.Events, args[0])
	return nil
}
