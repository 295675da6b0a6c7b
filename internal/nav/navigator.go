package nav

// Navigator holds the active Context and, as a sibling value, the project
// Context to return to when leaving a task pane.
type Navigator struct {
	Active Context
	Parent Context
}

// New starts on the project pane.
func New(projectCount int) Navigator {
	ctx := NewProjectContext(projectCount)
	return Navigator{Active: ctx, Parent: ctx}
}

// InTasks reports whether the task pane has focus.
func (n Navigator) InTasks() bool {
	return n.Active.pane == TaskPane
}

// ProjectIndex is the index of the selected project: the remembered one
// while in the task pane, otherwise the cursor's.
func (n Navigator) ProjectIndex() int {
	if n.InTasks() {
		return n.Parent.Index()
	}
	return n.Active.Index()
}

// Enter focuses the task pane of the selected project. It is a no-op
// outside the project pane or when there is no project to enter.
func (n *Navigator) Enter(taskCount int) bool {
	if n.Active.pane != ProjectPane || n.Active.Empty() {
		return false
	}
	n.Parent = n.Active
	n.Active = NewTaskContext(taskCount)
	return true
}

// Leave restores the project Context remembered by Enter.
func (n *Navigator) Leave() bool {
	if n.Active.pane != TaskPane {
		return false
	}
	n.Active = n.Parent
	return true
}

// Sync moves the cursor to an entity's new position after the store
// reordered its collection.
func (n *Navigator) Sync(pos int) {
	n.Active = n.Active.JumpToIndex(pos)
}

// Refit fits both contexts to collections that changed underneath them,
// as after reloading the document. The task pane is left when its project
// no longer exists at the remembered index.
func (n *Navigator) Refit(projectCount int, taskCount func(project int) int) {
	if !n.InTasks() {
		n.Active = n.Active.Resize(projectCount)
		n.Parent = n.Active
		return
	}
	parent := n.Parent.Resize(projectCount)
	if parent.Empty() || parent.Index() != n.Parent.Index() {
		n.Parent = parent
		n.Active = parent
		return
	}
	n.Parent = parent
	n.Active = n.Active.Resize(taskCount(parent.Index()))
}
