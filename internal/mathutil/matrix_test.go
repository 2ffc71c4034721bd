package mathutil

import "testing"

func TestNewMat(t *testing.T) {
	m := NewMat(3, 4)
	if len(m) != 3 {
		t.Fatalf("rows = %d, want 3", len(m))
	}
	for i, row := range m {
		if len(row) != 4 {
			t.Fatalf("row %d cols = %d, want 4", i, len(row))
		}
	}
}

func TestNewMatFill(t *testing.T) {
	m := NewMatFill(2, 3, LogZero)
	for i, row := range m {
		for j, v := range row {
			if !IsLogZero(v) {
				t.Errorf("m[%d][%d] = %f, want LogZero", i, j, v)
			}
		}
	}
}

func TestNewIndexMatRowsIndependent(t *testing.T) {
	m := NewIndexMat(2, 2)
	m[0][1] = 7
	if m[1][0] != 0 {
		t.Errorf("m[1][0] = %d, want 0 (rows share backing but must not overlap)", m[1][0])
	}
}
