package pattern

import (
	"errors"
	"testing"
)

func TestDefaultCatalogVerifies(t *testing.T) {
	if got := Default.Len(); got != 8 {
		t.Fatalf("Default.Len() = %d, want 8", got)
	}
	if err := Default.Verify(MaxRows, RowSize); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestCatalogGetOutOfRange(t *testing.T) {
	for _, i := range []int{-1, Default.Len(), 100} {
		if _, err := Default.Get(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d) err = %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if Default.Name(-1) != "" {
		t.Error("Name(-1) should be empty")
	}
}

func TestCatalogMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet(8) did not panic")
		}
	}()
	Default.MustGet(8)
}

func TestOneColumnAtATime(t *testing.T) {
	for rows := 1; rows <= MaxRows; rows++ {
		total := rows * RowSize
		p := OneColumnAtATime{}.Bind(total, RowSize)
		for step := 0; step < 3*RowSize; step++ {
			on := 0
			for i := 0; i < total; i++ {
				if !p.Evaluate(i, step) {
					continue
				}
				on++
				if col := i % RowSize; col != step%RowSize {
					t.Fatalf("rows=%d step=%d: light %d in column %d is on", rows, step, i, col)
				}
			}
			if on != rows {
				t.Fatalf("rows=%d step=%d: %d lights on, want %d", rows, step, on, rows)
			}
		}
	}
}

func TestOneColumnSweepSingleRow(t *testing.T) {
	p := OneColumnAtATime{}.Bind(RowSize, RowSize)
	want := []int{0, 1, 2, 3, 4, 5, 6, 0}
	for step, col := range want {
		for i := 0; i < RowSize; i++ {
			if got := p.Evaluate(i, step); got != (i == col) {
				t.Errorf("step %d light %d = %v, want on-column %d", step, i, got, col)
			}
		}
	}
}

func TestLightAllOneAtATime(t *testing.T) {
	const total = 3 * RowSize
	p := LightAllOneAtATime{}.Bind(total, RowSize)

	for i := 0; i < total; i++ {
		if got, want := p.Evaluate(i, 0), i == 0; got != want {
			t.Errorf("step 0 light %d = %v, want %v", i, got, want)
		}
		if !p.Evaluate(i, total-1) {
			t.Errorf("step %d light %d is off", total-1, i)
		}
		if p.Evaluate(i, total) != p.Evaluate(i, 0) {
			t.Errorf("light %d differs between step %d and step 0", i, total)
		}
	}

	// fills cumulatively
	for step := 0; step < total; step++ {
		on := 0
		for i := 0; i < total; i++ {
			if p.Evaluate(i, step) {
				on++
			}
		}
		if on != step+1 {
			t.Errorf("step %d: %d lights on, want %d", step, on, step+1)
		}
	}
}

func TestComposedSplitHorizontal(t *testing.T) {
	p := Compose(centerOffsets, dividingHorizontalRows).Bind(3*RowSize, RowSize)

	tests := []struct {
		step int
		rows [3]bool
	}{
		{0, [3]bool{false, false, false}},
		{4, [3]bool{false, true, false}},
		{5, [3]bool{true, true, true}},
		{9, [3]bool{true, false, true}},
		{10, [3]bool{false, false, false}},
	}
	for _, tt := range tests {
		for i := 0; i < 3*RowSize; i++ {
			row := i / RowSize
			if got := p.Evaluate(i, tt.step); got != tt.rows[row] {
				t.Errorf("step %d light %d = %v, want %v", tt.step, i, got, tt.rows[row])
			}
		}
	}
}

func TestComposedIsPure(t *testing.T) {
	for idx := 0; idx < Default.Len(); idx++ {
		for rows := 1; rows <= MaxRows; rows++ {
			total := rows * RowSize
			p := Default.MustGet(idx).Bind(total, RowSize)
			for step := 0; step < 40; step++ {
				for i := 0; i < total; i++ {
					if p.Evaluate(i, step) != p.Evaluate(i, step) {
						t.Fatalf("pattern %d rows %d: light %d step %d not stable", idx, rows, i, step)
					}
				}
			}
		}
	}
}

func TestComposedRepeatsWithTableLength(t *testing.T) {
	c := Compose(topToBottomOffsets, matrixRainRows)
	p := c.Bind(5*RowSize, RowSize)
	period := len(matrixRainRows)
	for i := 0; i < 5*RowSize; i++ {
		for step := 0; step < period; step++ {
			if p.Evaluate(i, step) != p.Evaluate(i, step+period) {
				t.Fatalf("light %d: step %d and %d differ", i, step, step+period)
			}
		}
	}
}

func TestVerifyDetectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		def  *Composed
		want error
	}{
		{"missing row count", Compose(OffsetTable{{0}, {0, 0}}, arrowRightRows), ErrMissingOffsetEntry},
		{"short entry", Compose(OffsetTable{{0}, {0}, {0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0, 0}}, arrowRightRows), ErrMissingOffsetEntry},
		{"empty template", Compose(equalOffsets, RowTable{}), ErrBadTemplate},
		{"narrow template", Compose(equalOffsets, RowTable{{1, 0, 1}}), ErrBadTemplate},
		{"non binary", Compose(equalOffsets, RowTable{{0, 0, 0, 2, 0, 0, 0}}), ErrBadTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(Entry{Name: "fill", Definition: LightAllOneAtATime{}}, Entry{Name: "bad", Definition: tt.def})
			if err := c.Verify(MaxRows, RowSize); !errors.Is(err, tt.want) {
				t.Errorf("Verify err = %v, want %v", err, tt.want)
			}
		})
	}
}
