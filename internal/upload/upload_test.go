package upload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/imgajeed76/erpgrid/internal/util"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func drain(t *testing.T, task *Task) []Progress {
	t.Helper()
	var out []Progress
	timeout := time.After(5 * time.Second)
	for {
		select {
		case p, ok := <-task.Progress():
			if !ok {
				return out
			}
			out = append(out, p)
		case <-timeout:
			t.Fatal("progress channel never closed")
		}
	}
}

func TestSimulator_CompletesAt100(t *testing.T) {
	q := NewQueue(Simulator{Step: 25, Interval: time.Millisecond}, nil)
	task := q.Add(context.Background(), Item{Name: "invoice.pdf"})

	updates := drain(t, task)
	q.Wait()

	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.True(t, last.Done)
	assert.Equal(t, 100, last.Percent)
	assert.NoError(t, last.Err)
	assert.NoError(t, task.Err())
	assert.Equal(t, task.ID, last.TaskID)
	assert.True(t, util.ValidateULID(task.ID))

	for i := 1; i < len(updates); i++ {
		assert.GreaterOrEqual(t, updates[i].Percent, updates[i-1].Percent, "progress went backwards")
	}
}

func TestQueue_RemoveCancels(t *testing.T) {
	q := NewQueue(Simulator{Step: 1, Interval: 50 * time.Millisecond}, nil)
	task := q.Add(context.Background(), Item{Name: "payslips.zip"})
	other := q.Add(context.Background(), Item{Name: "leads.csv"})

	require.True(t, q.Remove(task.ID))
	assert.False(t, q.Remove(task.ID), "second remove is a no-op")

	updates := drain(t, task)
	last := updates[len(updates)-1]
	assert.True(t, last.Done)
	assert.Less(t, last.Percent, 100)
	assert.ErrorIs(t, task.Err(), util.ErrUploadCanceled)

	tasks := q.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, other.ID, tasks[0].ID)

	other.Cancel()
	drain(t, other)
	q.Wait()
}

func TestQueue_ParentContextStopsTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue(Simulator{Step: 1, Interval: 50 * time.Millisecond}, nil)
	a := q.Add(ctx, Item{Name: "a"})
	b := q.Add(ctx, Item{Name: "b"})

	cancel()
	q.Wait()

	for _, task := range []*Task{a, b} {
		<-task.Done()
		assert.ErrorIs(t, task.Err(), util.ErrUploadCanceled)
	}
}

type failing struct{ err error }

func (f failing) Upload(_ context.Context, _ Item, report func(int)) error {
	report(40)
	return f.err
}

func TestQueue_UploaderError(t *testing.T) {
	boom := errors.New("bucket full")
	q := NewQueue(failing{err: boom}, nil)
	task := q.Add(context.Background(), Item{Name: "x"})

	updates := drain(t, task)
	q.Wait()

	last := updates[len(updates)-1]
	assert.ErrorIs(t, last.Err, boom)
	assert.Equal(t, 40, last.Percent)
	assert.Equal(t, 40, task.Percent())
}

func TestTask_UnreadProgressDoesNotBlock(t *testing.T) {
	q := NewQueue(Simulator{Step: 1, Interval: time.Microsecond}, nil)
	task := q.Add(context.Background(), Item{Name: "big.bin"})

	// nobody reads the channel while the upload runs
	q.Wait()

	updates := drain(t, task)
	require.Len(t, updates, 1)
	assert.True(t, updates[0].Done)
	assert.Equal(t, 100, updates[0].Percent)
}
