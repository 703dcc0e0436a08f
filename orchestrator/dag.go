// Package orchestrator runs inspection work as a dependency graph of tasks
// while capping how many tasks hold each kind of resource at once.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDependencyFailed marks a task that never ran because a task it depends
// on failed.
var ErrDependencyFailed = errors.New("dependency failed")

// ResourceType represents the kind of capacity a task occupies while running
type ResourceType string

const (
	ResourceRead  ResourceType = "read"  // resource loads through asset loaders
	ResourceProbe ResourceType = "probe" // external ffprobe processes
	ResourceCPU   ResourceType = "cpu"   // in-process decoding
)

// Task represents a unit of work with dependencies and resource requirements
type Task struct {
	ID           string
	Run          func(ctx context.Context) error
	Dependencies []string // IDs of tasks that must complete before this one
	Resource     ResourceType

	Status    TaskStatus
	Error     error
	StartTime time.Time
	EndTime   time.Time
}

// TaskStatus represents the current state of a task
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskCompleted
	TaskFailed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	default:
		return fmt.Sprintf("TaskStatus(%d)", int(s))
	}
}

// TaskResult is reported once per task, in completion order.
type TaskResult struct {
	ID       string
	Err      error
	Duration time.Duration
}

// Success reports whether the task ran without error.
func (r TaskResult) Success() bool { return r.Err == nil }

// ResourceConstraint defines limits for a resource type
type ResourceConstraint struct {
	Type     ResourceType
	MaxSlots int // Maximum concurrent tasks for this resource
}

// Stats counts tasks by status.
type Stats struct {
	Total     int
	Pending   int
	Running   int
	Completed int
	Failed    int
}

// DAGOrchestrator manages task execution with dependencies and resource constraints
type DAGOrchestrator struct {
	mu          sync.Mutex
	tasks       map[string]*Task
	order       []*Task // insertion order, so scheduling is deterministic
	constraints map[ResourceType]int
	activeSlots map[ResourceType]int

	onProgress func(completed, total int, result TaskResult)
}

// NewDAGOrchestrator creates a new orchestrator with resource constraints.
// A resource without a constraint is unlimited.
func NewDAGOrchestrator(constraints []ResourceConstraint) *DAGOrchestrator {
	limits := make(map[ResourceType]int, len(constraints))
	for _, c := range constraints {
		limit := c.MaxSlots
		if limit < 1 {
			limit = 1
		}
		limits[c.Type] = limit
	}

	return &DAGOrchestrator{
		tasks:       make(map[string]*Task),
		constraints: limits,
		activeSlots: make(map[ResourceType]int),
	}
}

// AddTask adds a task to the orchestrator
func (o *DAGOrchestrator) AddTask(task *Task) error {
	if task.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if task.Run == nil {
		return fmt.Errorf("task %s has no Run function", task.ID)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.tasks[task.ID]; exists {
		return fmt.Errorf("task %s already exists", task.ID)
	}

	task.Status = TaskPending
	o.tasks[task.ID] = task
	o.order = append(o.order, task)
	return nil
}

// SetProgressCallback sets a callback invoked after each task finishes.
// It runs on the goroutine that called Execute.
func (o *DAGOrchestrator) SetProgressCallback(callback func(completed, total int, result TaskResult)) {
	o.onProgress = callback
}

// Execute runs all tasks respecting dependencies and resource constraints,
// and returns one result per task. Task failures are reported in the
// results; the error is only for an invalid graph.
//
// Once ctx is done no new task starts: pending tasks fail with ctx.Err()
// and running ones see the cancelled ctx.
func (o *DAGOrchestrator) Execute(ctx context.Context) ([]TaskResult, error) {
	if err := o.validateDAG(); err != nil {
		return nil, err
	}

	total := len(o.order)
	results := make([]TaskResult, 0, total)
	doneCh := make(chan finished)

	record := func(r TaskResult) {
		results = append(results, r)
		if o.onProgress != nil {
			o.onProgress(len(results), total, r)
		}
	}

	for len(results) < total {
		for _, r := range o.schedule(ctx, doneCh) {
			record(r)
		}
		if len(results) == total {
			break
		}
		if o.runningCount() == 0 {
			// validateDAG rules this out; guard against a silent hang anyway.
			return results, fmt.Errorf("no runnable tasks left with %d unfinished", total-len(results))
		}

		f := <-doneCh
		record(o.finish(f))
	}

	return results, nil
}

type finished struct {
	task  *Task
	err   error
	start time.Time
	end   time.Time
}

// schedule fails tasks that can no longer run and starts every ready task
// that can get a resource slot. It loops until a pass changes nothing so
// that failures propagate through chains of dependents.
func (o *DAGOrchestrator) schedule(ctx context.Context, doneCh chan<- finished) []TaskResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	var failed []TaskResult
	for changed := true; changed; {
		changed = false
		for _, task := range o.order {
			if task.Status != TaskPending {
				continue
			}

			if err := o.blockedBy(task); err != nil {
				failed = append(failed, o.failLocked(task, err))
				changed = true
				continue
			}
			if err := ctx.Err(); err != nil {
				failed = append(failed, o.failLocked(task, err))
				changed = true
				continue
			}

			if !o.dependenciesMet(task) || !o.tryAcquireResource(task.Resource) {
				continue
			}

			task.Status = TaskRunning
			task.StartTime = time.Now()
			go executeTask(ctx, task, doneCh)
		}
	}
	return failed
}

func executeTask(ctx context.Context, task *Task, doneCh chan<- finished) {
	start := time.Now()
	err := task.Run(ctx)
	doneCh <- finished{task: task, err: err, start: start, end: time.Now()}
}

func (o *DAGOrchestrator) finish(f finished) TaskResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.releaseResource(f.task.Resource)

	f.task.EndTime = f.end
	if f.err != nil {
		f.task.Status = TaskFailed
		f.task.Error = f.err
	} else {
		f.task.Status = TaskCompleted
	}
	return TaskResult{ID: f.task.ID, Err: f.err, Duration: f.end.Sub(f.start)}
}

func (o *DAGOrchestrator) failLocked(task *Task, err error) TaskResult {
	now := time.Now()
	task.Status = TaskFailed
	task.Error = err
	task.StartTime, task.EndTime = now, now
	return TaskResult{ID: task.ID, Err: err}
}

// blockedBy returns an error if any direct dependency failed. Dependents of
// a failed task are themselves failed, so direct deps are enough.
func (o *DAGOrchestrator) blockedBy(task *Task) error {
	for _, depID := range task.Dependencies {
		if o.tasks[depID].Status == TaskFailed {
			return fmt.Errorf("%w: %s", ErrDependencyFailed, depID)
		}
	}
	return nil
}

// dependenciesMet checks if all dependencies of a task are completed
func (o *DAGOrchestrator) dependenciesMet(task *Task) bool {
	for _, depID := range task.Dependencies {
		if o.tasks[depID].Status != TaskCompleted {
			return false
		}
	}
	return true
}

// tryAcquireResource attempts to acquire a resource slot
func (o *DAGOrchestrator) tryAcquireResource(resourceType ResourceType) bool {
	limit, exists := o.constraints[resourceType]
	if !exists {
		o.activeSlots[resourceType]++
		return true
	}

	if o.activeSlots[resourceType] < limit {
		o.activeSlots[resourceType]++
		return true
	}
	return false
}

// releaseResource releases a resource slot
func (o *DAGOrchestrator) releaseResource(resourceType ResourceType) {
	if o.activeSlots[resourceType] > 0 {
		o.activeSlots[resourceType]--
	}
}

func (o *DAGOrchestrator) runningCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := 0
	for _, task := range o.order {
		if task.Status == TaskRunning {
			n++
		}
	}
	return n
}

// validateDAG validates the task graph
func (o *DAGOrchestrator) validateDAG() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Check all dependencies exist
	for _, task := range o.order {
		for _, depID := range task.Dependencies {
			if _, exists := o.tasks[depID]; !exists {
				return fmt.Errorf("task %s depends on non-existent task %s", task.ID, depID)
			}
		}
	}

	// DFS cycle detection
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(taskID string) bool
	hasCycle = func(taskID string) bool {
		visited[taskID] = true
		recStack[taskID] = true

		for _, depID := range o.tasks[taskID].Dependencies {
			if !visited[depID] {
				if hasCycle(depID) {
					return true
				}
			} else if recStack[depID] {
				return true
			}
		}

		recStack[taskID] = false
		return false
	}

	for _, task := range o.order {
		if !visited[task.ID] && hasCycle(task.ID) {
			return fmt.Errorf("cycle detected in task dependencies")
		}
	}

	return nil
}

// GetTaskStatus returns the status of a task
func (o *DAGOrchestrator) GetTaskStatus(taskID string) (TaskStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	task, exists := o.tasks[taskID]
	if !exists {
		return TaskPending, fmt.Errorf("task %s not found", taskID)
	}
	return task.Status, nil
}

// GetStats returns execution statistics
func (o *DAGOrchestrator) GetStats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()

	stats := Stats{Total: len(o.order)}
	for _, task := range o.order {
		switch task.Status {
		case TaskPending:
			stats.Pending++
		case TaskRunning:
			stats.Running++
		case TaskCompleted:
			stats.Completed++
		case TaskFailed:
			stats.Failed++
		}
	}
	return stats
}
