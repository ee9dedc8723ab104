// Package upload runs cancellable upload tasks that report percent progress
// over channels.
package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/imgajeed76/erpgrid/internal/util"
)

// Item is one file to upload.
type Item struct {
	Name string
	Size int64
}

// Progress is a snapshot of a task. The last value on a task's channel has
// Done set.
type Progress struct {
	TaskID  string
	Item    Item
	Percent int
	Done    bool
	Err     error
}

// Uploader transfers one item, calling report with 0-100 as it goes. It must
// return promptly once ctx is done.
type Uploader interface {
	Upload(ctx context.Context, item Item, report func(percent int)) error
}

// Simulator advances by Step percent every Interval.
type Simulator struct {
	Step     int
	Interval time.Duration
}

const (
	DefaultStep     = 10
	DefaultInterval = 200 * time.Millisecond
)

func (s Simulator) Upload(ctx context.Context, _ Item, report func(int)) error {
	step, interval := s.Step, s.Interval
	if step <= 0 {
		step = DefaultStep
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pct := 0
	report(pct)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			pct = min(100, pct+step)
			report(pct)
			if pct == 100 {
				return nil
			}
		}
	}
}

// Task is one running upload.
type Task struct {
	ID   string
	Item Item

	cancel   context.CancelFunc
	progress chan Progress
	done     chan struct{}

	mu      sync.Mutex
	percent int
	err     error
}

// Progress delivers the latest progress. Intermediate values are coalesced
// when the reader falls behind; the channel is closed after the final value.
func (t *Task) Progress() <-chan Progress {
	return t.progress
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel stops the upload. The task finishes with ErrUploadCanceled.
func (t *Task) Cancel() {
	t.cancel()
}

// Percent returns the last reported progress.
func (t *Task) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.percent
}

// Err returns the outcome once Done is closed.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task) publish(p Progress) {
	select {
	case t.progress <- p:
		return
	default:
	}
	// only this goroutine sends, so after dropping the stale value there is room
	select {
	case <-t.progress:
	default:
	}
	t.progress <- p
}

func (t *Task) run(ctx context.Context, up Uploader) {
	defer close(t.done)
	defer close(t.progress)

	err := up.Upload(ctx, t.Item, func(pct int) {
		pct = max(0, min(100, pct))
		t.mu.Lock()
		t.percent = pct
		t.mu.Unlock()
		t.publish(Progress{TaskID: t.ID, Item: t.Item, Percent: pct})
	})
	if errors.Is(err, context.Canceled) {
		err = fmt.Errorf("%w: %s", util.ErrUploadCanceled, t.Item.Name)
	}

	t.mu.Lock()
	t.err = err
	pct := t.percent
	t.mu.Unlock()
	t.publish(Progress{TaskID: t.ID, Item: t.Item, Percent: pct, Done: true, Err: err})
}

// Queue owns a set of concurrent upload tasks.
type Queue struct {
	up  Uploader
	log *zap.Logger

	mu    sync.Mutex
	tasks map[string]*Task
	order []string
	wg    sync.WaitGroup
}

func NewQueue(up Uploader, log *zap.Logger) *Queue {
	if log == nil {
		log = zap.NewNop()
	}
	return &Queue{up: up, log: log, tasks: make(map[string]*Task)}
}

// Add starts uploading item. The task stops when ctx is done or it is
// removed.
func (q *Queue) Add(ctx context.Context, item Item) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		ID:       util.NewULID(),
		Item:     item,
		cancel:   cancel,
		progress: make(chan Progress, 1),
		done:     make(chan struct{}),
	}

	q.mu.Lock()
	q.tasks[t.ID] = t
	q.order = append(q.order, t.ID)
	q.mu.Unlock()

	q.log.Debug("upload started", zap.String("task", t.ID), zap.String("item", item.Name))
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer cancel()
		t.run(ctx, q.up)
		q.log.Debug("upload finished", zap.String("task", t.ID), zap.Error(t.Err()))
	}()
	return t
}

// Remove cancels the task and forgets it. It reports whether id was known.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	t, ok := q.tasks[id]
	if ok {
		delete(q.tasks, id)
		for i, tid := range q.order {
			if tid == id {
				q.order = append(q.order[:i], q.order[i+1:]...)
				break
			}
		}
	}
	q.mu.Unlock()

	if ok {
		t.Cancel()
	}
	return ok
}

// Get returns the task with id.
func (q *Queue) Get(id string) (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.tasks[id]
	return t, ok
}

// Tasks returns the queued tasks in the order they were added.
func (q *Queue) Tasks() []*Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Task, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.tasks[id])
	}
	return out
}

// Wait blocks until every task started by Add has finished.
func (q *Queue) Wait() {
	q.wg.Wait()
}
