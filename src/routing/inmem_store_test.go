package routing

import (
	"reflect"
	"testing"

	cm "github.com/ak033/462lab5/src/common"
)

func TestInmemStoreRows(t *testing.T) {
	store := NewInmemStore(3)

	if store.KnownCount() != 0 {
		t.Fatalf("fresh store should know 0 rows, not %d", store.KnownCount())
	}

	row := Row{0, 5, Infinity}
	if err := store.SetRow(0, row); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetRow(0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, row) {
		t.Fatalf("row should be %v, not %v", row, got)
	}

	// stored row must not alias the caller's slice
	row[1] = 42
	got, _ = store.GetRow(0)
	if got[1] != 5 {
		t.Fatalf("stored row aliases the caller's slice")
	}

	if !store.Known(0) {
		t.Fatal("router 0 should be known")
	}
	if store.Known(1) {
		t.Fatal("router 1 should not be known")
	}
}

func TestInmemStoreErrors(t *testing.T) {
	store := NewInmemStore(3)

	if _, err := store.GetRow(1); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}

	if _, err := store.GetRow(7); !cm.IsStore(err, cm.OutOfRange) {
		t.Fatalf("expected OutOfRange, got %v", err)
	}

	if err := store.SetRow(-1, Row{0, 0, 0}); !cm.IsStore(err, cm.OutOfRange) {
		t.Fatalf("expected OutOfRange, got %v", err)
	}

	if err := store.SetRow(1, Row{0, 0}); !cm.IsStore(err, cm.RowLengthMismatch) {
		t.Fatalf("expected RowLengthMismatch, got %v", err)
	}
}

func TestInmemStoreCompleteness(t *testing.T) {
	store := NewInmemStore(3)

	// arrival order must not matter
	order := []int{2, 0, 1}
	for i, id := range order {
		if store.Complete() {
			t.Fatalf("store complete after only %d rows", i)
		}
		row := NewRow(3)
		row[id] = 0
		if err := store.SetRow(id, row); err != nil {
			t.Fatal(err)
		}
	}

	if !store.Complete() {
		t.Fatal("store should be complete after all rows arrived")
	}
	if store.KnownCount() != 3 {
		t.Fatalf("known count should be 3, not %d", store.KnownCount())
	}
}

func TestInmemStoreMatrix(t *testing.T) {
	store := NewInmemStore(2)

	if err := store.SetRow(0, Row{0, 7}); err != nil {
		t.Fatal(err)
	}

	matrix := store.Matrix()

	expected := [][]int{
		{0, 7},
		{Infinity, Infinity},
	}
	if !reflect.DeepEqual(matrix, expected) {
		t.Fatalf("matrix should be %v, not %v", expected, matrix)
	}

	// the snapshot must be a deep copy
	matrix[0][0] = 99
	row, _ := store.GetRow(0)
	if row[0] != 0 {
		t.Fatal("Matrix snapshot aliases the stored rows")
	}
}
