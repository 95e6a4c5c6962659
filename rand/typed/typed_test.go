package typed

import (
	"testing"

	"github.com/gtank/raaz/internal/securemem"
	"github.com/gtank/raaz/rand/csprg"
)

type countingEntropy struct{ n byte }

func (e *countingEntropy) Fill(out []byte) error {
	for i := range out {
		out[i] = e.n
		e.n++
	}
	return nil
}

func newTestGenerator(t *testing.T) *csprg.Generator {
	t.Helper()
	g, err := csprg.New(&countingEntropy{}, false)
	if err != nil {
		t.Fatalf("csprg.New: %v", err)
	}
	return g
}

func TestFillProducesDistinctValues(t *testing.T) {
	g := newTestGenerator(t)
	defer g.Destroy()

	seen := make(map[uint64]bool)
	for i := 0; i < 20; i++ {
		v, err := Fill[uint64](g)
		if err != nil {
			t.Fatalf("Fill: %v", err)
		}
		seen[v] = true
	}
	if len(seen) < 15 {
		t.Fatalf("only %d distinct uint64 values out of 20 draws", len(seen))
	}
}

func TestFillAllUniformSizes(t *testing.T) {
	g := newTestGenerator(t)
	defer g.Destroy()

	if _, err := Fill[uint8](g); err != nil {
		t.Fatalf("Fill[uint8]: %v", err)
	}
	if _, err := Fill[int16](g); err != nil {
		t.Fatalf("Fill[int16]: %v", err)
	}
	if _, err := Fill[uint32](g); err != nil {
		t.Fatalf("Fill[uint32]: %v", err)
	}
	if _, err := Fill[int64](g); err != nil {
		t.Fatalf("Fill[int64]: %v", err)
	}
}

func TestBytesLength(t *testing.T) {
	g := newTestGenerator(t)
	defer g.Destroy()

	out, err := Bytes(g, 37)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(out) != 37 {
		t.Fatalf("len(out) = %d, want 37", len(out))
	}
}

func TestFillCellWritesIntoCellBacking(t *testing.T) {
	g := newTestGenerator(t)
	defer g.Destroy()

	cell, err := securemem.NewCell(16, false)
	if err != nil {
		t.Fatalf("NewCell: %v", err)
	}
	defer cell.Destroy()

	if err := FillCell(g, cell); err != nil {
		t.Fatalf("FillCell: %v", err)
	}
	allZero := true
	for _, b := range cell.Bytes() {
		if b != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Fatal("FillCell left the cell all zero, which is not plausible")
	}
}
