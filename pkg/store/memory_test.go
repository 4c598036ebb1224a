package store

import (
	"context"
	"slices"
	"testing"

	"github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/report"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	r1 := &report.Report{ID: "run-1"}
	r2 := &report.Report{ID: "run-2"}

	if err := s.Put(ctx, r1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, r2); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "run-1" {
		t.Errorf("Get returned %s, want run-1", got.ID)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !slices.Equal(ids, []string{"run-2", "run-1"}) {
		t.Errorf("List = %v, want newest first", ids)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("Get(missing) = nil error")
	}
	if !errors.Is(err, errors.ErrCodeReportNotFound) {
		t.Errorf("error code = %v, want REPORT_NOT_FOUND", errors.GetCode(err))
	}
}

func TestMemoryStorePutSameIDTwice(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	r := &report.Report{ID: "run-1"}
	_ = s.Put(ctx, r)
	_ = s.Put(ctx, r)

	ids, _ := s.List(ctx)
	if len(ids) != 1 {
		t.Errorf("List = %v, want single entry after re-put", ids)
	}
}
