package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/imkarma/tasks/internal/config"
	"github.com/imkarma/tasks/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the task directory, config and an empty document",
	Long:  "Creates ~/.tasks/ (or $TASKS_HOME) with a default config.yaml and an empty task document.\nExisting files are left untouched.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(paths.Dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", paths.Dir, err)
	}

	// Write default config unless one exists.
	if _, err := os.Stat(paths.Config); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(paths.Config, config.DefaultConfig()); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}

	path := dataPath()
	s, err := store.Init(path)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": path, "projects": s.ProjectCount()}).Info("initialized")

	fmt.Fprintf(out, "Initialized tasks in %s\n", paths.Dir)
	fmt.Fprintf(out, "  document: %s (%d projects)\n", s.Path(), s.ProjectCount())
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run: tasks project add \"your project\"")
	fmt.Fprintln(out, "  2. Run: tasks task add 1 \"your first task\"")
	fmt.Fprintln(out, "  3. Run: tasks")

	return nil
}
