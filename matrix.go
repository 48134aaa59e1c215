package poseidon

// Square matrices are stored flat, row-major: coefficient (i,j) of an n×n
// matrix lives at index i*n+j. This is the layout the permutation consumes
// directly, so the derivation code below works on it as well.

func matVecMul[E any, PE Element[E]](mat, in []E, n int) []E {
	out := make([]E, n)
	var tmp E
	for i := 0; i < n; i++ {
		row := mat[i*n : (i+1)*n]
		var acc E
		PE(&acc).SetZero()
		for j := 0; j < n; j++ {
			PE(&tmp).Mul(&row[j], &in[j])
			PE(&acc).Add(&acc, &tmp)
		}
		out[i] = acc
	}
	return out
}

func matMatMul[E any, PE Element[E]](a, b []E, n int) []E {
	out := make([]E, n*n)
	var tmp E
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var acc E
			PE(&acc).SetZero()
			for k := 0; k < n; k++ {
				PE(&tmp).Mul(&a[i*n+k], &b[k*n+j])
				PE(&acc).Add(&acc, &tmp)
			}
			out[i*n+j] = acc
		}
	}
	return out
}

func matTranspose[E any, PE Element[E]](mat []E, n int) []E {
	out := make([]E, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			PE(&out[j*n+i]).Set(&mat[i*n+j])
		}
	}
	return out
}

// matInverse inverts a square matrix by Gaussian elimination: forward
// elimination to an upper-triangular form with unit diagonal, tracking the
// identity through the same row operations, then back substitution to clear
// the upper triangle. Every pivot must be nonzero; a singular matrix is a
// programming error here (the MDS matrix and all its trailing submatrices
// are invertible for well-formed parameters), so it panics.
func matInverse[E any, PE Element[E]](mat []E, n int) []E {
	m := make([]E, len(mat))
	copy(m, mat)
	inv := make([]E, n*n)
	for i := 0; i < n; i++ {
		PE(&inv[i*n+i]).SetOne()
	}

	var tmp E
	for row := 0; row < n; row++ {
		for j := 0; j < row; j++ {
			el := m[row*n+j]
			for col := 0; col < n; col++ {
				if col < j {
					PE(&m[row*n+col]).SetZero()
				} else {
					PE(&tmp).Mul(&m[j*n+col], &el)
					PE(&m[row*n+col]).Sub(&m[row*n+col], &tmp)
				}
				if col > row {
					PE(&inv[row*n+col]).SetZero()
				} else {
					PE(&tmp).Mul(&inv[j*n+col], &el)
					PE(&inv[row*n+col]).Sub(&inv[row*n+col], &tmp)
				}
			}
		}
		if PE(&m[row*n+row]).IsZero() {
			panic("poseidon: singular matrix")
		}
		var pivotInv E
		PE(&pivotInv).Inverse(&m[row*n+row])
		for col := 0; col < n; col++ {
			switch {
			case col < row:
				PE(&inv[row*n+col]).Mul(&inv[row*n+col], &pivotInv)
			case col == row:
				PE(&m[row*n+col]).SetOne()
				PE(&inv[row*n+col]).Mul(&inv[row*n+col], &pivotInv)
			default:
				PE(&m[row*n+col]).Mul(&m[row*n+col], &pivotInv)
			}
		}
	}

	// Back substitution only needs to touch inv: the multipliers still sit
	// in the upper triangle of m.
	for row := n - 1; row >= 0; row-- {
		for j := n - 1; j > row; j-- {
			el := m[row*n+j]
			for col := 0; col < n; col++ {
				PE(&tmp).Mul(&inv[j*n+col], &el)
				PE(&inv[row*n+col]).Sub(&inv[row*n+col], &tmp)
			}
		}
	}
	return inv
}
