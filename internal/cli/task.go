package cli

import (
	"fmt"

	"github.com/imkarma/tasks/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Add, move or annotate tasks",
	Long:  "Manage the tasks of a project. Project and task numbers are 1-based, as printed by `tasks board`.",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [project] [description]",
	Short: "Add a TODO task to a project",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskAdd,
}

var taskStateCmd = &cobra.Command{
	Use:   "state [project] [task] [todo|ongoing|done]",
	Short: "Set a task's state",
	Args:  cobra.ExactArgs(3),
	RunE:  runTaskState,
}

var taskRmCmd = &cobra.Command{
	Use:     "rm [project] [task]",
	Aliases: []string{"remove"},
	Short:   "Remove a task",
	Args:    cobra.ExactArgs(2),
	RunE:    runTaskRm,
}

var taskCommentCmd = &cobra.Command{
	Use:   "comment [project] [task] [text]",
	Short: "Add a comment to a task's history",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runTaskComment,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [project] [task] [description]",
	Short: "Replace a task's description",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runTaskEdit,
}

func init() {
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskStateCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskCommentCmd)
	taskCmd.AddCommand(taskEditCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	desc, err := joinText(args[1:], "task description")
	if err != nil {
		return err
	}
	s, err := mustStore()
	if err != nil {
		return err
	}
	p, err := parseProject(s, args[0])
	if err != nil {
		return err
	}

	t := store.NewTask(desc)
	pos, err := s.AddTask(p, t)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"project": p + 1, "task": t.ID, "position": pos}).Info("task added")

	fmt.Fprintf(cmd.OutOrStdout(), "Added task %d to project %d: %s [%s]\n", pos+1, p+1, desc, t.State())
	return nil
}

// taskArgs resolves the leading project and task numbers.
func taskArgs(s *store.Store, args []string) (int, int, error) {
	p, err := parseProject(s, args[0])
	if err != nil {
		return 0, 0, err
	}
	t, err := parseTask(s, p, args[1])
	if err != nil {
		return 0, 0, err
	}
	return p, t, nil
}

func runTaskState(cmd *cobra.Command, args []string) error {
	st, err := store.ParseState(args[2])
	if err != nil {
		return err
	}
	s, err := mustStore()
	if err != nil {
		return err
	}
	p, t, err := taskArgs(s, args)
	if err != nil {
		return err
	}

	pos, changed, err := s.SetTaskState(p, t, st)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !changed {
		fmt.Fprintf(out, "Task %d is already %s\n", t+1, st)
		return nil
	}
	log.WithFields(log.Fields{"project": p + 1, "task": s.Task(p, pos).ID, "state": st, "position": pos}).Info("state changed")

	fmt.Fprintf(out, "Task %d moved to %s%s%s (now task %d)\n", t+1, stateColor(st), st, colorReset, pos+1)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	p, t, err := taskArgs(s, args)
	if err != nil {
		return err
	}

	task := s.Task(p, t)
	if err := s.RemoveTask(p, t); err != nil {
		return err
	}
	log.WithFields(log.Fields{"project": p + 1, "task": task.ID}).Info("task removed")

	fmt.Fprintf(cmd.OutOrStdout(), "Removed task %d: %s\n", t+1, task.Description())
	return nil
}

func runTaskComment(cmd *cobra.Command, args []string) error {
	text, err := joinText(args[2:], "comment")
	if err != nil {
		return err
	}
	s, err := mustStore()
	if err != nil {
		return err
	}
	p, t, err := taskArgs(s, args)
	if err != nil {
		return err
	}

	if err := s.AddComment(p, t, text); err != nil {
		return err
	}
	log.WithFields(log.Fields{"project": p + 1, "task": s.Task(p, t).ID}).Info("comment added")

	fmt.Fprintf(cmd.OutOrStdout(), "Commented on task %d\n", t+1)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	desc, err := joinText(args[2:], "task description")
	if err != nil {
		return err
	}
	s, err := mustStore()
	if err != nil {
		return err
	}
	p, t, err := taskArgs(s, args)
	if err != nil {
		return err
	}

	changed, err := s.SetTaskDescription(p, t, desc)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Task %d unchanged\n", t+1)
		return nil
	}
	log.WithFields(log.Fields{"project": p + 1, "task": s.Task(p, t).ID}).Info("description changed")

	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d: %s\n", t+1, desc)
	return nil
}
