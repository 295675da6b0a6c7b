package nav

import (
	"math/rand"
	"testing"
)

func TestIndex_AccountsForHeader(t *testing.T) {
	c := NewProjectContext(3)
	if c.Row() != HeaderOffset+1 {
		t.Errorf("expected first row %d, got %d", HeaderOffset+1, c.Row())
	}
	if c.Index() != 0 {
		t.Errorf("expected index 0, got %d", c.Index())
	}
}

func TestMove_Clamps(t *testing.T) {
	c := NewTaskContext(3)

	if got := c.Move(-1); got != c {
		t.Errorf("expected move above first row to be ignored, got %v", got)
	}
	c = c.Move(2)
	if c.Index() != 2 {
		t.Fatalf("expected index 2, got %d", c.Index())
	}
	if got := c.Move(1); got != c {
		t.Errorf("expected move past last row to be ignored, got %v", got)
	}
	if _, moved := c.Moved(1); moved {
		t.Error("expected Moved to report false at the end")
	}
	if next, moved := c.Moved(-2); !moved || next.Index() != 0 {
		t.Errorf("expected Moved(-2) to reach 0, got %v %v", next, moved)
	}
}

func TestMove_EmptyPane(t *testing.T) {
	c := NewProjectContext(0)
	if got := c.Move(1); got != c {
		t.Errorf("expected no movement in empty pane, got %v", got)
	}
	if got := c.JumpToEnd(); got != c {
		t.Errorf("expected JumpToEnd to be a no-op in empty pane, got %v", got)
	}
}

func TestJumps(t *testing.T) {
	c := NewProjectContext(5)

	if got := c.JumpToEnd().Index(); got != 4 {
		t.Errorf("expected JumpToEnd index 4, got %d", got)
	}
	if got := c.JumpToEnd().JumpToStart().Index(); got != 0 {
		t.Errorf("expected JumpToStart index 0, got %d", got)
	}
	if got := c.JumpToIndex(3).Index(); got != 3 {
		t.Errorf("expected index 3, got %d", got)
	}
	if got := c.JumpToIndex(9); got != c {
		t.Errorf("expected out-of-range jump to be ignored, got %v", got)
	}
}

func TestShrink(t *testing.T) {
	c := NewTaskContext(3).JumpToIndex(2)

	c, ok := c.Shrink()
	if !ok || c.Len() != 2 || c.Index() != 1 {
		t.Fatalf("expected len 2 index 1, got %v (%v)", c, ok)
	}

	// Deleting the first row keeps the cursor on the first row.
	c = c.JumpToStart()
	c, ok = c.Shrink()
	if !ok || c.Len() != 1 || c.Index() != 0 {
		t.Fatalf("expected len 1 index 0, got %v", c)
	}

	c, ok = c.Shrink()
	if !ok || !c.Empty() || c.Row() != HeaderOffset+1 {
		t.Fatalf("expected empty pane on first row, got %v", c)
	}
	if _, ok := c.Shrink(); ok {
		t.Error("expected Shrink on empty pane to report false")
	}
}

func TestGrowThenJump(t *testing.T) {
	c := NewTaskContext(2).JumpToIndex(1)
	c = c.Grow().JumpToIndex(2)
	if c.Len() != 3 || c.Index() != 2 {
		t.Errorf("expected len 3 index 2, got %v", c)
	}
}

func TestResize(t *testing.T) {
	c := NewProjectContext(5).JumpToEnd()
	if got := c.Resize(2); got.Index() != 1 || got.Len() != 2 {
		t.Errorf("expected clamp to index 1, got %v", got)
	}
	if got := c.Resize(0); got.Index() != 0 || !got.Empty() {
		t.Errorf("expected reset to first row, got %v", got)
	}
	if got := c.Resize(9); got.Index() != 4 {
		t.Errorf("expected cursor kept when growing, got %v", got)
	}
}

func TestEnterLeave_RestoresExactContext(t *testing.T) {
	n := New(4)
	n.Active = n.Active.JumpToIndex(2)
	before := n.Active

	if !n.Enter(7) {
		t.Fatal("expected Enter to succeed")
	}
	if !n.InTasks() || n.Active.Len() != 7 || n.Active.Index() != 0 {
		t.Fatalf("expected task pane at first row, got %v", n.Active)
	}
	if n.ProjectIndex() != 2 {
		t.Errorf("expected project index 2, got %d", n.ProjectIndex())
	}
	if n.Enter(1) {
		t.Error("expected Enter from task pane to be rejected")
	}

	n.Active = n.Active.JumpToEnd()
	if !n.Leave() {
		t.Fatal("expected Leave to succeed")
	}
	if n.Active != before {
		t.Errorf("expected %v restored, got %v", before, n.Active)
	}
	if n.Leave() {
		t.Error("expected Leave from project pane to be rejected")
	}
}

func TestEnter_EmptyProjectPane(t *testing.T) {
	n := New(0)
	if n.Enter(0) {
		t.Error("expected Enter with no projects to be rejected")
	}
}

func TestSync(t *testing.T) {
	n := New(3)
	n.Enter(4)
	n.Sync(3)
	if n.Active.Index() != 3 {
		t.Errorf("expected index 3, got %d", n.Active.Index())
	}
}

// TestIndexInvariant_RandomWalk drives random command sequences and checks
// the cursor stays on a valid row after every step.
func TestIndexInvariant_RandomWalk(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		n := New(r.Intn(6))
		for step := 0; step < 500; step++ {
			switch r.Intn(9) {
			case 0:
				n.Active = n.Active.Move(r.Intn(7) - 3)
			case 1:
				n.Active = n.Active.JumpToIndex(r.Intn(10) - 2)
			case 2:
				n.Active = n.Active.JumpToStart()
			case 3:
				n.Active = n.Active.JumpToEnd()
			case 4:
				if next, ok := n.Active.Shrink(); ok {
					n.Active = next
				}
			case 5:
				n.Active = n.Active.Grow().JumpToIndex(r.Intn(n.Active.Len() + 1))
			case 6:
				before := n.Active
				if n.Enter(r.Intn(5)) {
					n.Leave()
					if n.Active != before {
						t.Fatalf("run %d step %d: enter/leave changed %v to %v", run, step, before, n.Active)
					}
					n.Enter(r.Intn(5))
				}
			case 7:
				n.Leave()
			case 8:
				n.Active = n.Active.Resize(r.Intn(6))
			}

			c := n.Active
			if c.Len() > 0 && (c.Index() < 0 || c.Index() >= c.Len()) {
				t.Fatalf("run %d step %d: index %d outside [0, %d)", run, step, c.Index(), c.Len())
			}
			if c.Len() == 0 && c.Index() != 0 {
				t.Fatalf("run %d step %d: empty pane with index %d", run, step, c.Index())
			}
		}
	}
}

func TestRefit(t *testing.T) {
	counts := map[int]int{0: 1, 1: 5, 2: 2}
	taskCount := func(p int) int { return counts[p] }

	// Project pane: cursor clamps to the shorter list.
	n := New(3)
	n.Active = n.Active.JumpToEnd()
	n.Refit(2, taskCount)
	if n.InTasks() || n.Active.Index() != 1 || n.Active.Len() != 2 {
		t.Errorf("expected project cursor clamped to 1 of 2, got %s", n.Active)
	}

	// Task pane, project still there: task cursor clamps.
	n = New(3)
	n.Active = n.Active.Move(1)
	n.Enter(5)
	n.Active = n.Active.JumpToEnd()
	counts[1] = 2
	n.Refit(3, taskCount)
	if !n.InTasks() || n.Active.Index() != 1 || n.Active.Len() != 2 {
		t.Errorf("expected task cursor clamped to 1 of 2, got %s", n.Active)
	}

	// Task pane, project gone: back to the project pane.
	n.Refit(1, taskCount)
	if n.InTasks() {
		t.Fatal("expected to leave the task pane when its project disappeared")
	}
	if n.Active.Index() != 0 || n.Active.Len() != 1 {
		t.Errorf("expected project cursor on 0 of 1, got %s", n.Active)
	}

	// Everything deleted.
	n.Refit(0, taskCount)
	if !n.Active.Empty() || n.Active.Index() != 0 {
		t.Errorf("expected empty pane on first row, got %s", n.Active)
	}
}
