package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/mfortier/tsx-data/internal/model"
)

// fakeRows implements pgx.Rows over a fixed instrument list.
type fakeRows struct {
	instruments []model.Instrument
	idx         int
	err         error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	return r.idx < len(r.instruments)
}

func (r *fakeRows) Scan(dest ...any) error {
	inst := r.instruments[r.idx]
	r.idx++
	*(dest[0].(*int64)) = inst.ID
	*(dest[1].(*string)) = inst.Ticker
	return nil
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeBatchResults struct {
	rows []fakeRow
	idx  int
}

func (b *fakeBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, nil }
func (b *fakeBatchResults) Query() (pgx.Rows, error)         { return nil, errors.New("not implemented") }
func (b *fakeBatchResults) Close() error                     { return nil }

func (b *fakeBatchResults) QueryRow() pgx.Row {
	if b.idx >= len(b.rows) {
		return fakeRow{scan: func(...any) error { return errors.New("no more rows") }}
	}
	r := b.rows[b.idx]
	b.idx++
	return r
}

type fakeDB struct {
	rows     *fakeRows
	queryErr error

	execTag  pgconn.CommandTag
	execErr  error
	execSQL  string
	execArgs []any

	batchResults *fakeBatchResults
	sentBatch    *pgx.Batch
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	return db.rows, nil
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execSQL = sql
	db.execArgs = args
	return db.execTag, db.execErr
}

func (db *fakeDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	db.sentBatch = b
	if db.batchResults == nil {
		return &fakeBatchResults{}
	}
	return db.batchResults
}

func TestListInstruments(t *testing.T) {
	want := []model.Instrument{
		{ID: 1, Ticker: "RY"},
		{ID: 2, Ticker: "SHOP"},
		{ID: 3, Ticker: "BIP.UN"},
	}
	db := &fakeDB{rows: &fakeRows{instruments: want}}
	s := New(db, nil)

	got, err := s.ListInstruments(context.Background())
	if err != nil {
		t.Fatalf("ListInstruments error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instrument[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestListInstruments_StoreUnavailable(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("connection refused")}
	s := New(db, nil)

	_, err := s.ListInstruments(context.Background())
	if err == nil {
		t.Fatal("err = nil, want store error")
	}
}

func TestUpdateMetrics(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 1")}
	s := New(db, nil)

	snap := model.MetricsSnapshot{
		Current:     decimal.RequireFromString("130.00"),
		FirstOfYear: decimal.RequireFromString("100.00"),
		YTDReturn:   30.0,
		ComputedAt:  time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}

	if err := s.UpdateMetrics(context.Background(), 42, snap); err != nil {
		t.Fatalf("UpdateMetrics error = %v", err)
	}

	if len(db.execArgs) != 5 {
		t.Fatalf("exec args = %d, want 5", len(db.execArgs))
	}
	if db.execArgs[0] != int64(42) {
		t.Errorf("id arg = %v, want 42", db.execArgs[0])
	}
	if db.execArgs[1] != 30.0 {
		t.Errorf("ytd arg = %v, want 30.0", db.execArgs[1])
	}
	if db.execArgs[2] != "130" {
		t.Errorf("current arg = %v, want %q", db.execArgs[2], "130")
	}
	if db.execArgs[3] != "100" {
		t.Errorf("first arg = %v, want %q", db.execArgs[3], "100")
	}
}

func TestUpdateMetrics_MissingInstrument(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 0")}
	s := New(db, nil)

	err := s.UpdateMetrics(context.Background(), 999, model.MetricsSnapshot{})
	if err == nil {
		t.Fatal("err = nil, want not-found error")
	}
}

func TestSeedInstruments(t *testing.T) {
	fresh := func(v bool) fakeRow {
		return fakeRow{scan: func(dest ...any) error {
			*(dest[0].(*bool)) = v
			return nil
		}}
	}

	db := &fakeDB{batchResults: &fakeBatchResults{
		rows: []fakeRow{fresh(true), fresh(false), fresh(true)},
	}}
	s := New(db, nil)

	res, err := s.SeedInstruments(context.Background(), []string{"RY", "SHOP", "TD"})
	if err != nil {
		t.Fatalf("SeedInstruments error = %v", err)
	}

	if res.Inserted != 2 {
		t.Errorf("Inserted = %d, want 2", res.Inserted)
	}
	if res.Updated != 1 {
		t.Errorf("Updated = %d, want 1", res.Updated)
	}
	if db.sentBatch.Len() != 3 {
		t.Errorf("batch len = %d, want 3", db.sentBatch.Len())
	}
}

func TestSeedInstruments_Empty(t *testing.T) {
	db := &fakeDB{}
	s := New(db, nil)

	res, err := s.SeedInstruments(context.Background(), nil)
	if err != nil {
		t.Fatalf("SeedInstruments error = %v", err)
	}
	if res.Inserted != 0 || res.Updated != 0 {
		t.Errorf("res = %+v, want zero", res)
	}
	if db.sentBatch != nil {
		t.Error("batch sent for empty universe")
	}
}
