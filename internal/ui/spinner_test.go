package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/imgajeed76/erpgrid/internal/upload"
	"github.com/imgajeed76/erpgrid/internal/util"
)

type failingUploader struct{}

func (failingUploader) Upload(_ context.Context, _ upload.Item, report func(int)) error {
	report(40)
	return errors.New("quota exceeded")
}

func TestWatchUploads_ReportsFinalStates(t *testing.T) {
	defer goleak.VerifyNone(t)
	t.Setenv("ERPGRID_NO_COLOR", "1")

	ok := upload.NewQueue(upload.Simulator{Step: 50, Interval: time.Millisecond}, nil)
	bad := upload.NewQueue(failingUploader{}, nil)
	tasks := []*upload.Task{
		ok.Add(context.Background(), upload.Item{Name: "invoice.pdf"}),
		bad.Add(context.Background(), upload.Item{Name: "scan.png"}),
	}

	var out bytes.Buffer
	final := WatchUploads(&out, tasks)
	ok.Wait()
	bad.Wait()

	require.Len(t, final, 2)
	assert.True(t, final[0].Done)
	assert.Equal(t, 100, final[0].Percent)
	assert.NoError(t, final[0].Err)
	assert.True(t, final[1].Done)
	assert.EqualError(t, final[1].Err, "quota exceeded")

	// not a terminal: one line per 10% step plus the final line, no redraws
	assert.NotContains(t, out.String(), "\033[")
	assert.Contains(t, out.String(), "invoice.pdf")
	assert.Contains(t, out.String(), "quota exceeded")
}

func TestWatchUploads_Canceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := upload.NewQueue(upload.Simulator{Step: 1, Interval: time.Hour}, nil)
	task := q.Add(context.Background(), upload.Item{Name: "big.zip"})
	require.True(t, q.Remove(task.ID))

	final := WatchUploads(&bytes.Buffer{}, []*upload.Task{task})
	q.Wait()

	require.Len(t, final, 1)
	assert.ErrorIs(t, final[0].Err, util.ErrUploadCanceled)
}

func TestBar(t *testing.T) {
	t.Setenv("ERPGRID_NO_COLOR", "1")

	assert.Equal(t, "["+strings.Repeat(".", barWidth)+"]", Bar(-5))
	assert.Equal(t, "["+strings.Repeat("#", barWidth)+"]", Bar(150))
	assert.Equal(t, "["+strings.Repeat("#", 15)+strings.Repeat(".", 15)+"]", Bar(50))
}
