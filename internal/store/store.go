package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store owns the in-memory project collection and the document it is
// persisted to. Every mutating method rewrites the document before it
// returns. If that write fails the in-memory change is kept and the error
// is returned; callers may retry with Save.
type Store struct {
	path     string
	projects []Project
}

// Load reads and parses the document at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, &StorageError{Op: "parse", Path: path, Err: err}
	}
	if projects == nil {
		projects = []Project{}
	}
	return &Store{path: path, projects: projects}, nil
}

// Init creates an empty document at path if none exists, then loads it.
func Init(path string) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, &StorageError{Op: "write", Path: path, Err: err}
		}
		if err := writeFileAtomic(path, []byte("[]"), 0o644); err != nil {
			return nil, &StorageError{Op: "write", Path: path, Err: err}
		}
	}
	return Load(path)
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Save rewrites the whole document.
func (s *Store) Save() error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Encode serializes the collection exactly as Save writes it.
func (s *Store) Encode() ([]byte, error) {
	data, err := json.Marshal(s.projects)
	if err != nil {
		return nil, &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	return data, nil
}

// --- Readers ---

// Projects returns a copy of all projects in order.
func (s *Store) Projects() []Project {
	out := make([]Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.clone()
	}
	return out
}

// Project returns a copy of the project at index i.
func (s *Store) Project(i int) Project {
	return s.project(i).clone()
}

// Tasks returns a copy of the tasks of the project at index project.
func (s *Store) Tasks(project int) []Task {
	return s.Project(project).Tasks
}

// Task returns a copy of a single task.
func (s *Store) Task(project, task int) Task {
	return s.task(project, task).clone()
}

// ProjectCount returns the number of projects.
func (s *Store) ProjectCount() int {
	return len(s.projects)
}

// TaskCount returns the number of tasks in a project.
func (s *Store) TaskCount(project int) int {
	return len(s.project(project).Tasks)
}

// TaskState returns the derived state of a task.
func (s *Store) TaskState(project, task int) State {
	return s.task(project, task).State()
}

// ValidProject reports whether i addresses an existing project.
func (s *Store) ValidProject(i int) bool {
	return i >= 0 && i < len(s.projects)
}

// ValidTask reports whether (project, task) addresses an existing task.
func (s *Store) ValidTask(project, task int) bool {
	return s.ValidProject(project) && task >= 0 && task < len(s.projects[project].Tasks)
}

// --- Mutations ---

// AddProject appends a project.
func (s *Store) AddProject(p Project) error {
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	s.projects = append(s.projects, p)
	return s.Save()
}

// AddTask appends a task to a project, regroups the project's tasks by state
// and returns the new task's position.
func (s *Store) AddTask(project int, t Task) (int, error) {
	p := s.project(project)
	p.Tasks = append(p.Tasks, t)
	p.SortTasks()
	pos, _ := p.TaskPosition(t.ID)
	return pos, s.Save()
}

// RemoveProject deletes the project at index i.
func (s *Store) RemoveProject(i int) error {
	s.project(i)
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	return s.Save()
}

// RemoveTask deletes a task from a project.
func (s *Store) RemoveTask(project, i int) error {
	p := s.project(project)
	s.task(project, i)
	p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
	return s.Save()
}

// SwapProjects exchanges two projects.
func (s *Store) SwapProjects(i, j int) error {
	s.project(i)
	s.project(j)
	s.projects[i], s.projects[j] = s.projects[j], s.projects[i]
	return s.Save()
}

// SwapTasks exchanges two tasks within a project. The project is not
// regrouped: a manual swap is the latest explicit ordering.
func (s *Store) SwapTasks(project, i, j int) error {
	p := s.project(project)
	s.task(project, i)
	s.task(project, j)
	p.Tasks[i], p.Tasks[j] = p.Tasks[j], p.Tasks[i]
	return s.Save()
}

// SetTaskState appends a state event when state differs from the task's
// current state, regroups the project and returns the task's new position.
// When the state is unchanged nothing is written and changed is false.
func (s *Store) SetTaskState(project, task int, state State) (pos int, changed bool, err error) {
	t := s.task(project, task)
	if t.State() == state {
		return task, false, nil
	}
	t.appendEvent(StateEvent(state, time.Now().UTC()))

	p := s.project(project)
	id := t.ID
	p.SortTasks()
	pos, _ = p.TaskPosition(id)
	return pos, true, s.Save()
}

// SetTaskDescription appends a description event when text differs from
// the current description.
func (s *Store) SetTaskDescription(project, task int, text string) (bool, error) {
	t := s.task(project, task)
	if t.Description() == text {
		return false, nil
	}
	t.appendEvent(DescriptionEvent(text, time.Now().UTC()))
	return true, s.Save()
}

// AddComment appends a comment event to a task.
func (s *Store) AddComment(project, task int, text string) error {
	t := s.task(project, task)
	t.appendEvent(CommentEvent(text, time.Now().UTC()))
	return s.Save()
}

// SetProjectNotes replaces a project's notes.
func (s *Store) SetProjectNotes(project int, notes string) error {
	s.project(project).Notes = notes
	return s.Save()
}

// project returns a pointer into the collection, panicking with an
// *IndexError when i is out of range.
func (s *Store) project(i int) *Project {
	if i < 0 || i >= len(s.projects) {
		panic(&IndexError{Kind: "project", Index: i, Len: len(s.projects)})
	}
	return &s.projects[i]
}

func (s *Store) task(project, i int) *Task {
	p := s.project(project)
	if i < 0 || i >= len(p.Tasks) {
		panic(&IndexError{Kind: "task", Index: i, Len: len(p.Tasks)})
	}
	return &p.Tasks[i]
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place so a failed write never leaves a truncated document.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}
