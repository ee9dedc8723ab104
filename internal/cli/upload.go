package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/imgajeed76/erpgrid/internal/config"
	"github.com/imgajeed76/erpgrid/internal/ui"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
	"github.com/imgajeed76/erpgrid/internal/upload"
	"github.com/imgajeed76/erpgrid/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload attachments with progress",
		Long: `Upload attachment files concurrently, one progress bar per file.

Transfers are simulated: progress advances by upload.step_percent every
upload.interval_ms. Press Ctrl+C to cancel every upload.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return util.MissingArgumentError("file", "erpgrid upload invoice.pdf receipt.png")
			}
			return nil
		},
		RunE: runUpload,
	}

	cmd.Flags().Int("step", 0, "Percent per tick (default: upload.step_percent)")
	cmd.Flags().Duration("interval", 0, "Time per tick (default: upload.interval_ms)")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobal()
	if err != nil {
		return err
	}

	sim := upload.Simulator{Step: cfg.Upload.StepPercent, Interval: cfg.UploadInterval()}
	if step, _ := cmd.Flags().GetInt("step"); step > 0 {
		sim.Step = step
	}
	if interval, _ := cmd.Flags().GetDuration("interval"); interval > 0 {
		sim.Interval = interval
	}

	items := make([]upload.Item, 0, len(args))
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return util.NewError("Cannot upload file").WithContext(path).Wrap(err)
		}
		if info.IsDir() {
			return util.NewError("Cannot upload a directory").WithContext(path)
		}
		items = append(items, upload.Item{Name: filepath.Base(path), Size: info.Size()})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	q := upload.NewQueue(sim, logger)
	tasks := make([]*upload.Task, len(items))
	for i, item := range items {
		tasks[i] = q.Add(ctx, item)
	}

	start := time.Now()
	final := ui.WatchUploads(os.Stdout, tasks)
	q.Wait()

	failed := 0
	for _, p := range final {
		if p.Err != nil {
			failed++
			logger.Warn("upload failed", zap.String("task", p.TaskID), zap.String("item", p.Item.Name), zap.Error(p.Err))
		}
	}

	fmt.Println()
	if failed > 0 {
		if ctx.Err() != nil {
			return util.NewError("Uploads canceled").
				WithMessage(fmt.Sprintf("%d of %d uploads did not finish", failed, len(final))).
				Wrap(util.ErrUploadCanceled)
		}
		return util.NewError(fmt.Sprintf("%d of %d uploads failed", failed, len(final)))
	}
	fmt.Println(styles.SuccessMsg(fmt.Sprintf("Uploaded %d files in %s", len(final), time.Since(start).Round(time.Millisecond))))
	return nil
}
