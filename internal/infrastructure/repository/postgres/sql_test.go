package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestPQCodes(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert standing: %w", &pq.Error{Code: pqUniqueViolation})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
		if isForeignKeyViolation(err) {
			t.Fatalf("did not expect foreign key violation")
		}
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := &pq.Error{Code: pqForeignKeyViolation}
		if !isForeignKeyViolation(err) {
			t.Fatalf("expected foreign key violation")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if isUniqueViolation(fmt.Errorf("pq: relation matches does not exist")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestNullableConversions(t *testing.T) {
	if nullTimeToTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil for null time")
	}
	at := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)
	if got := nullTimeToTimePtr(timePtrToNullTime(&at)); got == nil || !got.Equal(at) {
		t.Fatalf("time round trip failed: %v", got)
	}

	if nullInt64ToIntPtr(intPtrToNullInt64(nil)) != nil {
		t.Fatalf("expected nil for null int")
	}
	extra := 4
	if got := nullInt64ToIntPtr(intPtrToNullInt64(&extra)); got == nil || *got != 4 {
		t.Fatalf("int round trip failed: %v", got)
	}
}
