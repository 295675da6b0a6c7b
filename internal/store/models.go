package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the workflow state of a task. States are totally ordered by
// declaration; that order is also the grouping order used by SortTasks.
type State int

const (
	StateTodo State = iota
	StateOngoing
	StateDone
)

var stateNames = [...]string{"TODO", "ONGOING", "DONE"}

// AllStates lists every state in grouping order.
var AllStates = []State{StateTodo, StateOngoing, StateDone}

func (s State) String() string {
	if s < StateTodo || s > StateDone {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Next returns the following state, clamping at DONE.
func (s State) Next() State {
	if s >= StateDone {
		return StateDone
	}
	return s + 1
}

// Previous returns the preceding state, clamping at TODO.
func (s State) Previous() State {
	if s <= StateTodo {
		return StateTodo
	}
	return s - 1
}

// ParseState accepts a state name in any case.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return State(i), nil
		}
	}
	return StateTodo, fmt.Errorf("unknown state %q (want todo, ongoing or done)", name)
}

func (s State) MarshalJSON() ([]byte, error) {
	if s < StateTodo || s > StateDone {
		return nil, fmt.Errorf("marshal state: invalid value %d", int(s))
	}
	return json.Marshal(stateNames[s])
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("unmarshal state: %w", err)
	}
	for i, n := range stateNames {
		if n == name {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unmarshal state: unknown value %q", name)
}

// EventKind discriminates the entries of a task's event log.
type EventKind string

const (
	KindDescription EventKind = "description"
	KindState       EventKind = "state"
	KindComment     EventKind = "comment"
)

// Event is one immutable entry in a task's log. Text carries the payload of
// description and comment events; State carries the payload of state events.
type Event struct {
	Kind     EventKind
	Text     string
	State    State
	DateTime time.Time
}

// DescriptionEvent records a new description for a task.
func DescriptionEvent(text string, at time.Time) Event {
	return Event{Kind: KindDescription, Text: text, DateTime: at}
}

// StateEvent records a state transition.
func StateEvent(state State, at time.Time) Event {
	return Event{Kind: KindState, State: state, DateTime: at}
}

// CommentEvent records a free-form note on a task.
func CommentEvent(text string, at time.Time) Event {
	return Event{Kind: KindComment, Text: text, DateTime: at}
}

// Data returns the payload rendered as text.
func (e Event) Data() string {
	if e.Kind == KindState {
		return e.State.String()
	}
	return e.Text
}

// eventJSON is the wire shape: {"type": ..., "data": ..., "date_time": ...}.
type eventJSON struct {
	Type     EventKind       `json:"type"`
	Data     json.RawMessage `json:"data"`
	DateTime time.Time       `json:"date_time"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch e.Kind {
	case KindState:
		data, err = json.Marshal(e.State)
	case KindDescription, KindComment:
		data, err = json.Marshal(e.Text)
	default:
		return nil, fmt.Errorf("marshal event: unknown type %q", e.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return json.Marshal(eventJSON{Type: e.Kind, Data: data, DateTime: e.DateTime})
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	ev := Event{Kind: raw.Type, DateTime: raw.DateTime}
	switch raw.Type {
	case KindState:
		if err := json.Unmarshal(raw.Data, &ev.State); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", raw.Type, err)
		}
	case KindDescription, KindComment:
		if err := json.Unmarshal(raw.Data, &ev.Text); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", raw.Type, err)
		}
	default:
		return fmt.Errorf("unmarshal event: unknown type %q", raw.Type)
	}
	*e = ev
	return nil
}

// Task is an event-sourced unit of work. Its state and description are
// never stored directly; they are folded from Events on every read.
type Task struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Events    []Event   `json:"events"`
}

// NewTask creates a task seeded with a TODO state event followed by a
// description event, so both derived fields are always backed by the log.
func NewTask(description string) Task {
	now := time.Now().UTC()
	return Task{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Events: []Event{
			StateEvent(StateTodo, now),
			DescriptionEvent(description, now),
		},
	}
}

// State returns the payload of the most recent state event.
func (t Task) State() State {
	state := StateTodo
	for _, e := range t.Events {
		if e.Kind == KindState {
			state = e.State
		}
	}
	return state
}

// Description returns the payload of the most recent description event.
func (t Task) Description() string {
	desc := ""
	for _, e := range t.Events {
		if e.Kind == KindDescription {
			desc = e.Text
		}
	}
	return desc
}

// Comments returns the comment events in the order they were appended.
func (t Task) Comments() []Event {
	var out []Event
	for _, e := range t.Events {
		if e.Kind == KindComment {
			out = append(out, e)
		}
	}
	return out
}

// UpdatedAt is the timestamp of the latest event, or CreatedAt for a task
// with an empty log.
func (t Task) UpdatedAt() time.Time {
	if len(t.Events) == 0 {
		return t.CreatedAt
	}
	return t.Events[len(t.Events)-1].DateTime
}

func (t *Task) appendEvent(e Event) {
	t.Events = append(t.Events, e)
}

// Project is a named, ordered collection of tasks.
type Project struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Tasks       []Task `json:"tasks"`
}

// NewProject creates an empty project with a fresh id.
func NewProject(description string) Project {
	return Project{
		ID:          uuid.NewString(),
		Description: description,
		Tasks:       []Task{},
	}
}

// SortTasks groups tasks by derived state (TODO, ONGOING, DONE). The sort is
// stable: tasks in the same state keep their relative order.
func (p *Project) SortTasks() {
	sort.SliceStable(p.Tasks, func(i, j int) bool {
		return p.Tasks[i].State() < p.Tasks[j].State()
	})
}

// TaskPosition returns the index of the task with the given id.
func (p Project) TaskPosition(id string) (int, bool) {
	for i, t := range p.Tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// CountByState tallies the project's tasks per derived state.
func (p Project) CountByState() map[State]int {
	counts := make(map[State]int, len(AllStates))
	for _, t := range p.Tasks {
		counts[t.State()]++
	}
	return counts
}

func (p Project) clone() Project {
	out := p
	out.Tasks = make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		out.Tasks[i] = t.clone()
	}
	return out
}

func (t Task) clone() Task {
	out := t
	out.Events = append([]Event(nil), t.Events...)
	return out
}
