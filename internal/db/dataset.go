package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imgajeed76/erpgrid/internal/records"
	"github.com/imgajeed76/erpgrid/internal/util"
)

var errNotConnected = util.ErrNotConnected

// rows is what both pgx and database/sql result sets provide.
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type queryFunc func(ctx context.Context, query string) (rows, error)

func loadDataset(ctx context.Context, query queryFunc) (*records.Dataset, error) {
	ds := &records.Dataset{}
	var err error

	ds.Leads, err = scanAll(ctx, query, selectLeads, "leads", func(r rows) (records.Lead, error) {
		var l records.Lead
		var created timestamp
		err := r.Scan(&l.ID, &l.Name, &l.Company, &l.Email, &l.Phone, &l.Source, &l.Status, &l.Owner, &l.Value, &created)
		l.CreatedAt = created.Time
		return l, err
	})
	if err != nil {
		return nil, err
	}

	ds.Approvals, err = scanAll(ctx, query, selectApprovals, "approvals", func(r rows) (records.Approval, error) {
		var a records.Approval
		var submitted timestamp
		err := r.Scan(&a.ID, &a.Title, &a.Kind, &a.Requester, &a.Amount, &a.Status, &submitted)
		a.SubmittedAt = submitted.Time
		return a, err
	})
	if err != nil {
		return nil, err
	}

	ds.Employees, err = scanAll(ctx, query, selectEmployees, "employees", func(r rows) (records.Employee, error) {
		var e records.Employee
		err := r.Scan(&e.ID, &e.Name, &e.Department, &e.Designation, &e.Basic)
		return e, err
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func scanAll[T any](ctx context.Context, query queryFunc, sql, table string, scan func(rows) (T, error)) ([]T, error) {
	r, err := query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer r.Close()

	var out []T
	for r.Next() {
		v, err := scan(r)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, v)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return out, nil
}

// timestamp scans both native time values and the text SQLite stores.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case int64:
		t.Time = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("cannot scan %T into timestamp", src)
}

func (t *timestamp) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return errors.New("unrecognized timestamp " + s)
}
