package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imgajeed76/erpgrid/internal/config"
	"github.com/imgajeed76/erpgrid/internal/db"
	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/records"
	"github.com/imgajeed76/erpgrid/internal/ui"
	"github.com/imgajeed76/erpgrid/internal/ui/table"
	"github.com/imgajeed76/erpgrid/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// listFlags are the flags every table command shares.
type listFlags struct {
	query    string
	filters  []string
	where    string
	sort     string
	page     int
	pageSize int
	all      bool
	rank     bool
	json     bool
	raw      bool
	noPager  bool
	source   string
	dsn      string
	watch    bool
}

func addListFlags(cmd *cobra.Command, f *listFlags) {
	fl := cmd.Flags()
	fl.StringVarP(&f.query, "query", "q", "", "Fuzzy search across visible columns")
	fl.StringArrayVarP(&f.filters, "filter", "f", nil, "Column filter key=value (repeatable)")
	fl.StringVar(&f.where, "where", "", `Expression filter, e.g. "value > 1000 && status == 'won'"`)
	fl.StringVar(&f.sort, "sort", "", "Sort by key[:asc|desc], comma separated")
	fl.IntVar(&f.page, "page", 1, "Page number to show")
	fl.IntVar(&f.pageSize, "page-size", 0, "Rows per page (default: table.page_size)")
	fl.BoolVar(&f.all, "all", false, "Print every matching row instead of one page")
	fl.BoolVar(&f.rank, "rank", false, "Order --query results by match rank when not sorted")
	fl.BoolVar(&f.json, "json", false, "Output results as JSON array")
	fl.BoolVar(&f.raw, "raw", false, "Output raw values without formatting (for piping)")
	fl.BoolVar(&f.noPager, "no-pager", false, "Disable interactive table view")
	fl.StringVar(&f.source, "source", "", "JSON, YAML or TOML record file")
	fl.StringVar(&f.dsn, "db", "", "postgres:// url or SQLite file")
	fl.BoolVar(&f.watch, "watch", false, "Reload the record file in the viewer when it changes")
}

// sourcePath returns the record file in use, if records come from a file.
func (f *listFlags) sourcePath(cfg *config.GlobalConfig) string {
	switch {
	case f.dsn != "":
		return ""
	case f.source != "":
		return f.source
	case cfg.Source.DatabaseURL != "":
		return ""
	}
	return cfg.Source.Path
}

// loadDataset reads records from --db, --source, the configured source or
// the built-in sample data, in that order.
func loadDataset(ctx context.Context, f *listFlags, cfg *config.GlobalConfig) (*records.Dataset, error) {
	dsn := f.dsn
	if dsn == "" && f.source == "" {
		dsn = cfg.Source.DatabaseURL
	}

	if dsn != "" {
		spinner := ui.NewSpinner("Loading records from " + util.RedactURL(dsn))
		spinner.Start()
		src, err := db.Open(ctx, dsn)
		if err != nil {
			spinner.Stop()
			return nil, err
		}
		defer src.Close()
		ds, err := src.Dataset(ctx)
		spinner.Stop()
		if err != nil {
			return nil, util.DatabaseConnectionError(dsn, err)
		}
		logger.Debug("loaded records", zap.String("source", util.RedactURL(dsn)))
		return ds, nil
	}

	if path := f.sourcePath(cfg); path != "" {
		logger.Debug("loading records", zap.String("source", path))
		return records.FileSource{Path: path}.Dataset(ctx)
	}
	return records.BuiltinSource{}.Dataset(ctx)
}

// newEngine builds an engine over rows and applies the list flags to it.
func newEngine[R any](f *listFlags, cfg *config.GlobalConfig, cols []grid.Column[R], id func(R) string, rows []R) (*grid.Engine[R], error) {
	threshold, err := cfg.Threshold()
	if err != nil {
		return nil, util.NewError("Invalid search.threshold in config").
			WithSuggestion("erpgrid config search.threshold matches").
			Wrap(err)
	}
	if f.pageSize < 0 {
		return nil, util.InvalidFlagError("page-size", fmt.Sprint(f.pageSize), grid.ErrInvalidPageSize)
	}
	if f.page < 1 {
		return nil, util.InvalidFlagError("page", fmt.Sprint(f.page), fmt.Errorf("pages start at 1"))
	}
	pageSize := f.pageSize
	if pageSize == 0 {
		pageSize = cfg.Table.PageSize
	}

	e, err := grid.New(grid.Options[R]{
		Columns:    cols,
		ID:         id,
		Rows:       rows,
		PageSize:   pageSize,
		WindowSize: cfg.Table.WindowSize,
		Threshold:  threshold,
		RankOrder:  f.rank || cfg.Search.RankOrder,
		OnAction: func(a grid.Action) {
			logger.Info("row action", zap.String("kind", string(a.Kind)), zap.String("id", a.RecordID))
		},
		OnDelete: func(id string) error {
			// sources are read-only; a delete only drops the row from this session
			logger.Info("record removed from view", zap.String("id", id))
			return nil
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}

	for _, spec := range f.filters {
		key, value, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, util.InvalidFlagError("filter", spec, fmt.Errorf("expected key=value"))
		}
		key = strings.TrimSpace(key)
		if _, ok := e.Column(key); !ok {
			return nil, util.UnknownColumnError("filter", key, keys)
		}
		e.SetColumnFilter(key, value)
	}

	if f.sort != "" {
		s, err := grid.ParseSort(f.sort)
		if err != nil {
			return nil, util.InvalidFlagError("sort", f.sort, err)
		}
		for _, k := range s {
			c, ok := e.Column(k.Key)
			if !ok {
				return nil, util.UnknownColumnError("sort", k.Key, keys)
			}
			if !c.Sortable {
				return nil, util.InvalidFlagError("sort", f.sort, fmt.Errorf("column %s is not sortable", k.Key))
			}
		}
		e.SetSort(s)
	}

	e.SetQuery(f.query)
	if f.where != "" {
		if err := e.SetExpr(f.where); err != nil {
			return nil, util.InvalidFlagError("where", f.where, err).
				WithSuggestion(`erpgrid leads --where "value > 1000 && status == 'won'"`)
		}
	}

	e.GotoPage(f.page)
	return e, nil
}

// runList loads the dataset, picks rows of one record type and displays
// them. pick is reused to reload rows under --watch.
func runList[R any](cmd *cobra.Command, f *listFlags, title string, cols []grid.Column[R], id func(R) string, pick func(*records.Dataset) ([]R, error)) error {
	ctx := cmd.Context()

	cfg, err := config.LoadGlobal()
	if err != nil {
		return err
	}

	ds, err := loadDataset(ctx, f, cfg)
	if err != nil {
		return err
	}
	rows, err := pick(ds)
	if err != nil {
		return err
	}

	e, err := newEngine(f, cfg, cols, id, rows)
	if err != nil {
		return err
	}

	opts := table.DisplayOptions[R]{
		JSON:     f.json,
		Raw:      f.raw,
		NoPager:  f.noPager,
		All:      f.all,
		ColWidth: cfg.Table.ColWidth,
		Logger:   logger,
	}

	if f.watch {
		path := f.sourcePath(cfg)
		if path == "" {
			return util.NewError("--watch needs a record file").
				WithMessage("Only file sources can be watched").
				WithSuggestion("erpgrid leads --source leads.yaml --watch")
		}
		if f.json || f.raw || f.noPager || !term.IsTerminal(int(os.Stdout.Fd())) {
			logger.Debug("--watch ignored outside the interactive viewer")
		} else {
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			opts.Updates = watchRows(ctx, path, pick)
		}
	}

	return table.DisplayResults(title, e, opts)
}

// watchRows reloads path on every change and delivers the picked rows.
// Only the latest row set is kept when the viewer falls behind. The
// channel is closed when ctx is done.
func watchRows[R any](ctx context.Context, path string, pick func(*records.Dataset) ([]R, error)) <-chan []R {
	ch := make(chan []R, 1)
	go func() {
		defer close(ch)
		err := records.Watch(ctx, path, records.DefaultDebounce, logger, func() {
			ds, err := records.FileSource{Path: path}.Dataset(ctx)
			if err != nil {
				logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
				return
			}
			rows, err := pick(ds)
			if err != nil {
				logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
				return
			}
			select {
			case ch <- rows:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
			ch <- rows
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("watch stopped", zap.String("path", path), zap.Error(err))
		}
	}()
	return ch
}
