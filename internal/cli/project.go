package cli

import (
	"fmt"
	"strings"

	"github.com/imkarma/tasks/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Add, remove or annotate projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a project at the end of the list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectAdd,
}

var projectRmCmd = &cobra.Command{
	Use:     "rm [project]",
	Aliases: []string{"remove"},
	Short:   "Remove a project and all of its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectRm,
}

var projectNotesCmd = &cobra.Command{
	Use:   "notes [project] [text]",
	Short: "Replace a project's notes (no text clears them)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectNotes,
}

func init() {
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectRmCmd)
	projectCmd.AddCommand(projectNotesCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	desc, err := joinText(args, "project description")
	if err != nil {
		return err
	}
	s, err := mustStore()
	if err != nil {
		return err
	}

	p := store.NewProject(desc)
	if err := s.AddProject(p); err != nil {
		return err
	}
	log.WithFields(log.Fields{"project": p.ID, "position": s.ProjectCount() - 1}).Info("project added")

	fmt.Fprintf(cmd.OutOrStdout(), "Added project %d: %s\n", s.ProjectCount(), desc)
	return nil
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	idx, err := parseProject(s, args[0])
	if err != nil {
		return err
	}

	p := s.Project(idx)
	if err := s.RemoveProject(idx); err != nil {
		return err
	}
	log.WithFields(log.Fields{"project": p.ID, "tasks": len(p.Tasks)}).Info("project removed")

	fmt.Fprintf(cmd.OutOrStdout(), "Removed project %d: %s (%d tasks)\n", idx+1, p.Description, len(p.Tasks))
	return nil
}

func runProjectNotes(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	idx, err := parseProject(s, args[0])
	if err != nil {
		return err
	}

	notes := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := s.SetProjectNotes(idx, notes); err != nil {
		return err
	}
	log.WithField("project", s.Project(idx).ID).Info("notes updated")

	if notes == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared notes of project %d\n", idx+1)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated notes of project %d\n", idx+1)
	}
	return nil
}
