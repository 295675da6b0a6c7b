package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imkarma/tasks/internal/config"
	"github.com/imkarma/tasks/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// testHome points TASKS_HOME at a fresh directory.
func testHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.HomeEnv, dir)
	t.Setenv(DebugEnv, "")
	t.Cleanup(func() { flagFile = "" })
	return dir
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("tasks %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func loadDoc(t *testing.T, home string) *store.Store {
	t.Helper()
	s, err := store.Load(filepath.Join(home, "projects.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestInit_CreatesFiles(t *testing.T) {
	home := testHome(t)
	out := mustRun(t, "init")

	if !strings.Contains(out, "Initialized tasks") {
		t.Errorf("unexpected output: %s", out)
	}
	data, err := os.ReadFile(filepath.Join(home, "projects.json"))
	if err != nil {
		t.Fatalf("document not created: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty document, got %q", data)
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Errorf("config not created: %v", err)
	}

	// Second init keeps the document.
	mustRun(t, "project", "add", "Keep")
	mustRun(t, "init")
	if loadDoc(t, home).ProjectCount() != 1 {
		t.Error("init overwrote an existing document")
	}
}

func TestCommands_BeforeInit(t *testing.T) {
	testHome(t)
	_, err := run(t, "status")
	if err == nil {
		t.Fatal("expected error without a document")
	}
	if !strings.Contains(err.Error(), "tasks init") {
		t.Errorf("expected hint to run init, got %v", err)
	}
}

func TestProjectAndTaskFlow(t *testing.T) {
	home := testHome(t)
	mustRun(t, "init")

	mustRun(t, "project", "add", "Ship", "v1")
	mustRun(t, "task", "add", "1", "Write", "docs")
	mustRun(t, "task", "add", "1", "Cut", "release")

	out := mustRun(t, "task", "state", "1", "1", "done")
	if !strings.Contains(out, "now task 2") {
		t.Errorf("expected done task regrouped to 2, got %s", out)
	}
	out = mustRun(t, "task", "state", "1", "2", "DONE")
	if !strings.Contains(out, "already DONE") {
		t.Errorf("expected no-op message, got %s", out)
	}

	mustRun(t, "task", "comment", "1", "2", "shipped", "today")
	mustRun(t, "task", "edit", "1", "1", "Cut", "release", "v1.0")

	s := loadDoc(t, home)
	if s.Project(0).Description != "Ship v1" {
		t.Errorf("unexpected project %q", s.Project(0).Description)
	}
	if got := s.Task(0, 0).Description(); got != "Cut release v1.0" {
		t.Errorf("expected edited task first, got %q", got)
	}
	done := s.Task(0, 1)
	if done.State() != store.StateDone || done.Description() != "Write docs" {
		t.Errorf("expected Write docs DONE second, got %s %q", done.State(), done.Description())
	}
	if c := done.Comments(); len(c) != 1 || c[0].Text != "shipped today" {
		t.Errorf("unexpected comments %+v", c)
	}

	board := mustRun(t, "board")
	for _, want := range []string{"1. Ship v1", "TODO", "DONE", "Write docs"} {
		if !strings.Contains(board, want) {
			t.Errorf("board missing %q:\n%s", want, board)
		}
	}

	status := mustRun(t, "status")
	if !strings.Contains(status, "Tasks: 2 total") {
		t.Errorf("unexpected status:\n%s", status)
	}

	logOut := mustRun(t, "log", "1", "2")
	for _, want := range []string{"updated", "description", "state", "comment", "shipped today"} {
		if !strings.Contains(logOut, want) {
			t.Errorf("log missing %q:\n%s", want, logOut)
		}
	}

	mustRun(t, "task", "rm", "1", "1")
	if n := loadDoc(t, home).TaskCount(0); n != 1 {
		t.Errorf("expected 1 task after rm, got %d", n)
	}
}

func TestProjectNotesAndRemove(t *testing.T) {
	home := testHome(t)
	mustRun(t, "init")
	mustRun(t, "project", "add", "A")
	mustRun(t, "project", "add", "B")

	mustRun(t, "project", "notes", "2", "due", "friday")
	if got := loadDoc(t, home).Project(1).Notes; got != "due friday" {
		t.Errorf("expected notes, got %q", got)
	}
	mustRun(t, "project", "notes", "2")
	if got := loadDoc(t, home).Project(1).Notes; got != "" {
		t.Errorf("expected notes cleared, got %q", got)
	}

	mustRun(t, "project", "notes", "1", "keep")
	out := mustRun(t, "project", "notes", "1", "  ", " ")
	if !strings.Contains(out, "Cleared notes of project 1") {
		t.Errorf("expected blank notes to clear, got %s", out)
	}
	if got := loadDoc(t, home).Project(0).Notes; got != "" {
		t.Errorf("expected blank notes stored as empty, got %q", got)
	}

	mustRun(t, "project", "rm", "1")
	s := loadDoc(t, home)
	if s.ProjectCount() != 1 || s.Project(0).Description != "B" {
		t.Errorf("expected only B left, got %+v", s.Projects())
	}
}

func TestInvalidNumbers(t *testing.T) {
	testHome(t)
	mustRun(t, "init")
	mustRun(t, "project", "add", "A")
	mustRun(t, "task", "add", "1", "a")

	cases := [][]string{
		{"project", "rm", "0"},
		{"project", "rm", "2"},
		{"project", "rm", "one"},
		{"task", "state", "1", "9", "done"},
		{"task", "state", "1", "1", "finished"},
		{"task", "rm", "2", "1"},
		{"log", "1", "0"},
		{"board", "3"},
	}
	for _, args := range cases {
		if _, err := run(t, args...); err == nil {
			t.Errorf("tasks %s: expected error", strings.Join(args, " "))
		}
	}
}

func TestEmptyTextRejected(t *testing.T) {
	home := testHome(t)
	mustRun(t, "init")
	if _, err := run(t, "project", "add", "  "); err == nil {
		t.Error("expected error for blank description")
	}
	if loadDoc(t, home).ProjectCount() != 0 {
		t.Error("blank project was stored")
	}
}

func TestFileFlag(t *testing.T) {
	home := testHome(t)
	custom := filepath.Join(t.TempDir(), "work.json")

	mustRun(t, "--file", custom, "init")
	mustRun(t, "--file", custom, "project", "add", "Elsewhere")

	s, err := store.Load(custom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ProjectCount() != 1 {
		t.Errorf("expected project in custom file, got %d", s.ProjectCount())
	}
	if _, err := os.Stat(filepath.Join(home, "projects.json")); !os.IsNotExist(err) {
		t.Error("default document should not be created with --file")
	}
}

func TestExport(t *testing.T) {
	testHome(t)
	mustRun(t, "init")
	mustRun(t, "project", "add", "A")
	mustRun(t, "task", "add", "1", "a")

	db := filepath.Join(t.TempDir(), "out.db")
	out := mustRun(t, "export", db)
	if !strings.Contains(out, "Exported 1 projects, 1 tasks, 2 events") {
		t.Errorf("unexpected export output: %s", out)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("database not written: %v", err)
	}
}

func TestMutationsAreLogged(t *testing.T) {
	home := testHome(t)
	hook := test.NewGlobal()
	defer hook.Reset()

	mustRun(t, "init")
	mustRun(t, "project", "add", "A")
	mustRun(t, "task", "add", "1", "a")
	mustRun(t, "task", "state", "1", "1", "ongoing")

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Message == "state changed" {
			found = true
			if e.Data["state"] != store.StateOngoing {
				t.Errorf("expected state field ONGOING, got %v", e.Data["state"])
			}
			if e.Data["position"] != 0 {
				t.Errorf("expected position 0, got %v", e.Data["position"])
			}
		}
	}
	if !found {
		t.Error("expected a state changed log entry")
	}

	data, err := os.ReadFile(filepath.Join(home, "tasks.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "task added") {
		t.Errorf("log file missing entries:\n%s", data)
	}
}

func TestSetupLogging_DebugEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasks.log")
	t.Setenv(DebugEnv, "1")
	defer closeLog()

	setupLogging(path, "warn")
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %s", log.GetLevel())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}

	t.Setenv(DebugEnv, "")
	setupLogging(path, "warn")
	if log.GetLevel() != log.WarnLevel {
		t.Errorf("expected warn level, got %s", log.GetLevel())
	}
}
