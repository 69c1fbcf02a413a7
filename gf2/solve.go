package gf2

// Solve finds one assignment x over m.N variables satisfying, for every row
// i, m.Rows[i]·x == rhs[i] (mod 2). This is the "substitution" responsibility
// of spec.md §4.1: turning an accepting CRHS path (a sequence of label/bit
// pairs) back into a variable assignment. Free variables (columns with no
// pivot in the row-reduced system) are set to 0; ok is false if the system
// is inconsistent.
func Solve(m Matrix, rhs []bool) (x Vector, ok bool) {
	rows := make([]Vector, len(m.Rows))
	b := make([]bool, len(rhs))
	copy(rows, m.Rows)
	for i := range rows {
		rows[i] = rows[i].Clone()
	}
	copy(b, rhs)

	pivotRow := 0
	pivotCols := []int{}
	for col := 0; col < m.N && pivotRow < len(rows); col++ {
		sel := -1
		for r := pivotRow; r < len(rows); r++ {
			if rows[r].Get(col) {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		rows[pivotRow], rows[sel] = rows[sel], rows[pivotRow]
		b[pivotRow], b[sel] = b[sel], b[pivotRow]
		for r := 0; r < len(rows); r++ {
			if r == pivotRow {
				continue
			}
			if rows[r].Get(col) {
				AddInto(rows[r], rows[pivotRow])
				b[r] = b[r] != b[pivotRow]
			}
		}
		pivotCols = append(pivotCols, col)
		pivotRow++
	}

	for r := pivotRow; r < len(rows); r++ {
		if rows[r].IsZero() && b[r] {
			return Vector{}, false
		}
	}

	x = NewVector(m.N)
	for i, col := range pivotCols {
		if b[i] {
			x.Set(col)
		}
	}
	return x, true
}
