package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrBusy        = errors.New("a generation is already running")
	ErrUnknownTask = errors.New("unknown task")
	// ErrTaskPanicked wraps the value of a panic raised inside a task.
	ErrTaskPanicked = errors.New("task panicked")
)

type TaskStatus string

const (
	TaskRunning   TaskStatus = "running"
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
)

// Task is the handle of one background run.
type Task struct {
	ID string

	done   chan struct{}
	mu     sync.Mutex
	status TaskStatus
	result Result
	err    error
}

func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Result returns the outcome once the task is done.
func (t *Task) Result() (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.err
}

func (t *Task) finish(res Result, err error) {
	t.mu.Lock()
	t.result, t.err = res, err
	t.status = TaskSucceeded
	if err != nil {
		t.status = TaskFailed
	}
	t.mu.Unlock()
	close(t.done)
}

// TaskEvent is delivered on Runner.Events when a task finishes.
type TaskEvent struct {
	TaskID string
	Result Result
	Err    error
}

// Runner runs at most one task at a time on its own goroutine.
type Runner struct {
	mu      sync.Mutex
	current *Task
	tasks   map[string]*Task
	events  chan TaskEvent
}

func NewRunner() *Runner {
	return &Runner{tasks: map[string]*Task{}, events: make(chan TaskEvent, 8)}
}

// Submit starts fn and returns immediately. While another task is running it
// returns ErrBusy.
func (r *Runner) Submit(ctx context.Context, fn func(context.Context) (Result, error)) (*Task, error) {
	r.mu.Lock()
	if r.current != nil {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	t := &Task{ID: uuid.NewString(), done: make(chan struct{}), status: TaskRunning}
	r.current = t
	r.tasks[t.ID] = t
	r.mu.Unlock()

	go func() {
		res, err := runRecovered(ctx, fn)

		r.mu.Lock()
		r.current = nil
		r.mu.Unlock()
		t.finish(res, err)

		select {
		case r.events <- TaskEvent{TaskID: t.ID, Result: res, Err: err}:
		default:
			// nobody is listening; the handle still has the outcome
		}
	}()
	return t, nil
}

// runRecovered turns a panic in fn into the task's error.
func runRecovered(ctx context.Context, fn func(context.Context) (Result, error)) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, rec)
		}
	}()
	return fn(ctx)
}

func (r *Runner) Get(id string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrUnknownTask
	}
	return t, nil
}

func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil
}

// Events delivers one event per finished task. Events are dropped when the
// buffer is full.
func (r *Runner) Events() <-chan TaskEvent { return r.events }
