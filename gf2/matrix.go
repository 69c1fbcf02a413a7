package gf2

// Matrix is a sequence of forms sharing the same variable universe: the
// rows the CRHS transform kernels build out of a set of level labels when
// they look for a linear dependency.
type Matrix struct {
	Rows []Vector
	N    int
}

// NewMatrix returns an empty matrix over n variables.
func NewMatrix(n int) Matrix {
	return Matrix{N: n}
}

// Append adds a row, cloning it so later mutation of the caller's vector
// does not alias the matrix.
func (m *Matrix) Append(row Vector) {
	m.Rows = append(m.Rows, row.Clone())
}

// RREF reduces m to reduced row-echelon form. It returns the echelon matrix,
// the pivot column of each echelon row (in row order), and a transform
// matrix T such that echelon row i equals the XOR of original rows j for
// which T.Rows[i].Get(j) is true, so any later form expressed against the
// echelon basis can be re-expressed as a combination of the original rows.
func RREF(m Matrix) (echelon Matrix, pivots []int, transform Matrix) {
	rows := make([]Vector, len(m.Rows))
	combo := make([]Vector, len(m.Rows))
	for i, r := range m.Rows {
		rows[i] = r.Clone()
		combo[i] = FromVars(len(m.Rows), i)
	}

	pivotRow := 0
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
		combo[pivotRow], combo[sel] = combo[sel], combo[pivotRow]

		for r := 0; r < len(rows); r++ {
			if r == pivotRow {
				continue
			}
			if rows[r].Get(col) {
				AddInto(rows[r], rows[pivotRow])
				AddInto(combo[r], combo[pivotRow])
			}
		}
		pivots = append(pivots, col)
		pivotRow++
	}

	echelon = Matrix{N: m.N, Rows: rows[:pivotRow]}
	transform = Matrix{N: len(m.Rows), Rows: combo[:pivotRow]}
	return echelon, pivots, transform
}

// Reduce returns a plus XORs of basis rows chosen so that no pivot column of
// basis (already in RREF) remains set in the result, along with the
// combination of basis rows used (indexed by position in basis.Rows).
func Reduce(a Vector, basis Matrix, pivots []int) (reduced Vector, combo Vector) {
	reduced = a.Clone()
	combo = NewVector(len(basis.Rows))
	for i, col := range pivots {
		if reduced.Get(col) {
			AddInto(reduced, basis.Rows[i])
			combo.Set(i)
		}
	}
	return reduced, combo
}

// Express searches for a subset of m's rows whose XOR equals target,
// returning the combination (as a bitmask over row indices) and true if
// target lies in the row span.
func Express(target Vector, m Matrix) (combo Vector, ok bool) {
	echelon, pivots, transform := RREF(m)
	reduced, comboEchelon := Reduce(target, echelon, pivots)
	if !reduced.IsZero() {
		return Vector{}, false
	}
	full := NewVector(len(m.Rows))
	for j := 0; j < len(transform.Rows); j++ {
		if comboEchelon.Get(j) {
			AddInto(full, transform.Rows[j])
		}
	}
	return full, true
}

// Dependency searches rows for a non-trivial subset whose XOR is zero. It
// returns the combination (as a bitmask over row indices) and true if one
// exists, i.e. rank(rows) < len(rows).
func Dependency(m Matrix) (combo Vector, ok bool) {
	echelon, pivots, transform := RREF(m)
	if len(pivots) == len(m.Rows) {
		return Vector{}, false
	}
	// Any original row not selected as a pivot row is redundant: build one
	// non-trivial combination by reducing each original row against the
	// echelon basis and finding one that reduces to zero without being the
	// trivial empty combination.
	for i, row := range m.Rows {
		reduced, c := Reduce(row, echelon, pivots)
		if reduced.IsZero() {
			// c expresses row i as XOR of echelon rows; expand echelon
			// rows back to original-row combinations via transform, then
			// add row i itself (its own singleton combination) so the
			// whole thing telescopes to zero.
			full := NewVector(len(m.Rows))
			full.Set(i)
			for j := 0; j < len(transform.Rows); j++ {
				if c.Get(j) {
					AddInto(full, transform.Rows[j])
				}
			}
			if !full.IsZero() {
				return full, true
			}
		}
	}
	return Vector{}, false
}
