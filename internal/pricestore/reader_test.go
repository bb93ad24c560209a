package pricestore

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

func boundaryResult(date time.Time, closeText string) fakeRow {
	return fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*time.Time)) = date
		*(dest[1].(*string)) = closeText
		return nil
	}}
}

func TestFirstCloseOnOrAfter(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{row: boundaryResult(date, "100.00")}
	s := New(db, 100, nil)

	p, found, err := s.FirstCloseOnOrAfter(context.Background(), 42, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FirstCloseOnOrAfter error = %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if p.InstrumentID != 42 {
		t.Errorf("InstrumentID = %d, want 42", p.InstrumentID)
	}
	if !p.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", p.Date, date)
	}
	if p.Close.String() != "100" {
		t.Errorf("Close = %s, want 100", p.Close)
	}
}

func TestLatestClose_NoRows(t *testing.T) {
	db := &fakeDB{row: errRow(pgx.ErrNoRows)}
	s := New(db, 100, nil)

	_, found, err := s.LatestClose(context.Background(), 42)
	if err != nil {
		t.Fatalf("LatestClose error = %v (absence must not be an error)", err)
	}
	if found {
		t.Error("found = true, want false")
	}
}

func TestBoundaryRow_BadDecimal(t *testing.T) {
	db := &fakeDB{row: boundaryResult(time.Now(), "not-a-number")}
	s := New(db, 100, nil)

	_, _, err := s.LatestClose(context.Background(), 42)
	if err == nil {
		t.Fatal("err = nil, want parse error")
	}
}
