package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/imkarma/tasks/internal/config"
	"github.com/imkarma/tasks/internal/store"
	log "github.com/sirupsen/logrus"
)

// DebugEnv forces debug logging when set to 1.
const DebugEnv = "TASKS_DEBUG"

var (
	flagFile string

	// Resolved once per invocation by setup.
	paths   config.Paths
	cfg     *config.Config
	logFile *os.File
)

// setup resolves the per-user paths, loads config.yaml and points logging
// at the log file.
func setup() error {
	p, err := config.Resolve()
	if err != nil {
		return &store.StorageError{Op: "resolve", Err: err}
	}
	c, err := config.Load(p.Config)
	if err != nil {
		return err
	}
	paths, cfg = p, c
	setupLogging(c.LogPath(p), c.LogLevel)
	return nil
}

// setupLogging sends logrus output to path. The TUI owns the terminal, so
// when the file cannot be opened logs are discarded rather than printed.
func setupLogging(path, level string) {
	closeLog()
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})

	lvl, err := log.ParseLevel(level)
	if err != nil || level == "" {
		lvl = log.InfoLevel
	}
	if os.Getenv(DebugEnv) == "1" {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	logFile = f
	log.SetOutput(f)
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// dataPath is the task document location: --file, else config, else
// ~/.tasks/projects.json.
func dataPath() string {
	if flagFile != "" {
		return flagFile
	}
	return cfg.DataPath(paths)
}

// mustStore loads the task document, pointing at `tasks init` when it does
// not exist yet.
func mustStore() (*store.Store, error) {
	path := dataPath()
	s, err := store.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no task document at %s. Run: tasks init", path)
		}
		log.WithField("path", path).WithError(err).Error("load failed")
		return nil, err
	}
	return s, nil
}

// parseProject turns a 1-based project number into an index.
func parseProject(s *store.Store, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid project number %q", arg)
	}
	if !s.ValidProject(n - 1) {
		return 0, fmt.Errorf("project %d does not exist (have %d)", n, s.ProjectCount())
	}
	return n - 1, nil
}

// parseTask turns a 1-based task number within a project into an index.
func parseTask(s *store.Store, project int, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", arg)
	}
	if !s.ValidTask(project, n-1) {
		return 0, fmt.Errorf("task %d does not exist in project %d (have %d)", n, project+1, s.TaskCount(project))
	}
	return n - 1, nil
}

// joinText joins free-form words and rejects empty text.
func joinText(args []string, what string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("%s cannot be empty", what)
	}
	return text, nil
}
