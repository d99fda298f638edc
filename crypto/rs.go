package crypto

import "errors"

// Reed-Solomon codec over GF(256) with primitive polynomial 0x11d and
// generator element 2. nsym parity bytes correct up to nsym/2 byte
// errors per codeword; nsym must be even per the configuration surface
// (see config.Config). There is no corpus-grounded RS/erasure library
// across any of the retrieved example repositories, so this codec is
// implemented directly on the standard library (see SPEC_FULL.md §3).
//
// Decoding uses the direct Peterson-Gorenstein-Zierler method: solve for
// the error-locator polynomial from a syndrome linear system, find its
// roots by brute-force search (codewords are at most 255 bytes), then
// solve a second, Vandermonde linear system for the error magnitudes
// directly from the syndrome definition syn[i] = sum_l e_l * X_l^i. Every
// correction is verified by recomputing all nsym syndromes of the
// corrected codeword before it is accepted; any mismatch reports
// decode failure rather than returning best-guess data, matching the
// "RS_decode returns Some(data) | None, never a best guess" contract.
// With more than nsym/2 errors the received bytes can lie within nsym/2
// of a different valid codeword; that codeword passes the check and its
// data is returned with ok=true.

const gfPrimePoly = 0x11d

var (
	gfExpTable [512]byte
	gfLogTable [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExpTable[i] = byte(x)
		gfLogTable[byte(x)] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= gfPrimePoly
		}
	}
	for i := 255; i < 512; i++ {
		gfExpTable[i] = gfExpTable[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[int(gfLogTable[a])+int(gfLogTable[b])]
}

func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	if b == 0 {
		panic("crypto: gf256 division by zero")
	}
	return gfExpTable[(int(gfLogTable[a])+255-int(gfLogTable[b]))%255]
}

func gfInv(a byte) byte {
	if a == 0 {
		panic("crypto: gf256 inverse of zero")
	}
	return gfExpTable[(255-int(gfLogTable[a]))%255]
}

func gfPow(a byte, n int) byte {
	if a == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	e := (int(gfLogTable[a]) * n) % 255
	if e < 0 {
		e += 255
	}
	return gfExpTable[e]
}

// gfPolyMul multiplies two polynomials given highest-degree-coefficient
// first.
func gfPolyMul(p, q []byte) []byte {
	out := make([]byte, len(p)+len(q)-1)
	for i, pc := range p {
		if pc == 0 {
			continue
		}
		for j, qc := range q {
			out[i+j] ^= gfMul(pc, qc)
		}
	}
	return out
}

// gfPolyEval evaluates polynomial p (highest degree first) at x via
// Horner's method.
func gfPolyEval(p []byte, x byte) byte {
	var y byte
	if len(p) > 0 {
		y = p[0]
	}
	for i := 1; i < len(p); i++ {
		y = gfMul(y, x) ^ p[i]
	}
	return y
}

// gfPolyEvalLowFirst evaluates polynomial p (constant term first, i.e.
// p[i] is the coefficient of x^i) at x.
func gfPolyEvalLowFirst(p []byte, x byte) byte {
	var y byte
	var xp byte = 1
	for _, c := range p {
		y ^= gfMul(c, xp)
		xp = gfMul(xp, x)
	}
	return y
}

// rsGeneratorPoly builds g(x) = prod_{i=0}^{nsym-1} (x - alpha^i), so
// that a valid codeword evaluates to zero at alpha^0 .. alpha^{nsym-1}.
func rsGeneratorPoly(nsym int) []byte {
	g := []byte{1}
	for i := 0; i < nsym; i++ {
		g = gfPolyMul(g, []byte{1, gfPow(2, i)})
	}
	return g
}

func rsEncode(data []byte, nsym int) ([]byte, error) {
	if nsym <= 0 || nsym%2 != 0 {
		return nil, errors.New("crypto: nsym must be a positive even number")
	}
	if nsym >= 255 {
		return nil, errors.New("crypto: nsym too large for GF(256)")
	}
	gen := rsGeneratorPoly(nsym)

	remainder := make([]byte, len(data)+nsym)
	copy(remainder, data)

	for i := 0; i < len(data); i++ {
		coef := remainder[i]
		if coef == 0 {
			continue
		}
		for j, gc := range gen {
			remainder[i+j] ^= gfMul(gc, coef)
		}
	}
	out := make([]byte, len(data)+nsym)
	copy(out, data)
	copy(out[len(data):], remainder[len(data):])
	return out, nil
}

// gfSolveLinear solves the n x n linear system given by the augmented
// n x (n+1) matrix m (mutated in place) via Gauss-Jordan elimination over
// GF(256). Returns ok=false if m is singular.
func gfSolveLinear(m [][]byte, n int) ([]byte, bool) {
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if m[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		inv := gfInv(m[col][col])
		for k := col; k <= n; k++ {
			m[col][k] = gfMul(m[col][k], inv)
		}
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := m[row][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				m[row][k] ^= gfMul(factor, m[col][k])
			}
		}
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = m[i][n]
	}
	return out, true
}

// rsDecode corrects up to nsym/2 byte errors in codeword and returns the
// leading len(codeword)-nsym data bytes. ok is false if correction did
// not succeed or could not be verified; with at most nsym/2 errors,
// rsDecode never returns corrupted data paired with ok=true.
func rsDecode(codeword []byte, nsym int) ([]byte, bool) {
	if nsym <= 0 || nsym%2 != 0 || nsym >= 255 || len(codeword) <= nsym || len(codeword) > 255 {
		return nil, false
	}
	n := len(codeword)
	t := nsym / 2

	// syn[i] = codeword evaluated at alpha^i, i = 0..nsym-1. For a valid
	// codeword this is identically zero (generator roots are alpha^0..
	// alpha^{nsym-1}); with errors it equals sum_l e_l * X_l^i where X_l
	// is the field value associated with error position l.
	syn := make([]byte, nsym)
	hasError := false
	for i := 0; i < nsym; i++ {
		syn[i] = gfPolyEval(codeword, gfPow(2, i))
		if syn[i] != 0 {
			hasError = true
		}
	}
	if !hasError {
		data := make([]byte, n-nsym)
		copy(data, codeword[:n-nsym])
		return data, true
	}

	var locator []byte // constant-term-first, locator[0] == 1
	solved := false
	for nu := t; nu >= 1; nu-- {
		m := make([][]byte, nu)
		for i := 0; i < nu; i++ {
			m[i] = make([]byte, nu+1)
			for j := 0; j < nu; j++ {
				m[i][j] = syn[i+j]
			}
			m[i][nu] = syn[nu+i]
		}
		sigma, ok := gfSolveLinear(m, nu)
		if !ok {
			continue
		}
		// sigma[j] solves for the coefficient of x^(nu-j), so it is stored
		// reversed into the constant-term-first locator.
		locator = make([]byte, nu+1)
		locator[0] = 1
		for k := 1; k <= nu; k++ {
			locator[k] = sigma[nu-k]
		}
		solved = true
		break
	}
	if !solved {
		return nil, false
	}
	nu := len(locator) - 1

	errPos := make([]int, 0, nu)
	for j := 0; j < n; j++ {
		power := (n - 1 - j) % 255
		xInv := gfPow(gfPow(2, power), 254) // X^-1 == X^254 since X^255==1
		if gfPolyEvalLowFirst(locator, xInv) == 0 {
			errPos = append(errPos, j)
		}
	}
	if len(errPos) != nu {
		return nil, false
	}

	xVals := make([]byte, nu)
	for l, j := range errPos {
		power := (n - 1 - j) % 255
		xVals[l] = gfPow(2, power)
	}

	vand := make([][]byte, nu)
	for r := 0; r < nu; r++ {
		vand[r] = make([]byte, nu+1)
		for l := 0; l < nu; l++ {
			vand[r][l] = gfPow(xVals[l], r)
		}
		vand[r][nu] = syn[r]
	}
	magnitudes, ok := gfSolveLinear(vand, nu)
	if !ok {
		return nil, false
	}

	corrected := make([]byte, n)
	copy(corrected, codeword)
	for l, j := range errPos {
		corrected[j] ^= magnitudes[l]
	}

	for i := 0; i < nsym; i++ {
		if gfPolyEval(corrected, gfPow(2, i)) != 0 {
			return nil, false
		}
	}
	data := make([]byte, n-nsym)
	copy(data, corrected[:n-nsym])
	return data, true
}
