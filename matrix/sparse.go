package matrix

import "sort"

// Layout selects the internal representation of a Sparse matrix.
// CSR is efficient for row slicing (GetRow), CSC for column slicing
// (GetCol) and per-column updates, DOK for individual cell access.
type Layout int

const (
	DOK Layout = iota
	CSR
	CSC
)

type cellKey struct {
	r uint32
	c uint32
}

// sparse vector with indices kept in ascending order
type spVec struct {
	idx []uint32
	val []float64
}

func (v *spVec) find(i uint32) int {
	return sort.Search(len(v.idx), func(k int) bool { return v.idx[k] >= i })
}

func (v *spVec) get(i uint32) float64 {
	k := v.find(i)
	if k < len(v.idx) && v.idx[k] == i {
		return v.val[k]
	}
	return 0
}

func (v *spVec) set(i uint32, x float64) {
	k := v.find(i)
	if k < len(v.idx) && v.idx[k] == i {
		v.val[k] = x
		return
	}
	if x == 0 {
		return
	}
	v.idx = append(v.idx, 0)
	v.val = append(v.val, 0)
	copy(v.idx[k+1:], v.idx[k:])
	copy(v.val[k+1:], v.val[k:])
	v.idx[k] = i
	v.val[k] = x
}

// internal sparse float64 matrix representation. Exactly one of
// dok/rows/cols is populated, depending on the current layout.
type Sparse struct {
	nrow   uint32
	ncol   uint32
	layout Layout
	dok    map[cellKey]float64
	rows   []spVec
	cols   []spVec
}

// NewSparse creates a new Sparse matrix with r rows and c columns
// in DOK layout. If r*c == 0, it will panic.
func NewSparse(r, c uint32) *Sparse {
	if r == 0 || c == 0 {
		panic(ErrBadShape)
	}
	return &Sparse{
		nrow:   r,
		ncol:   c,
		layout: DOK,
		dok:    make(map[cellKey]float64),
	}
}

// get the shape of the matrix
func (m *Sparse) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the current layout of the matrix
func (m *Sparse) Layout() Layout {
	return m.layout
}

// get the [r, c]-th element of the matrix
func (m *Sparse) Get(r, c uint32) float64 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	switch m.layout {
	case CSR:
		return m.rows[r].get(c)
	case CSC:
		return m.cols[c].get(r)
	default:
		return m.dok[cellKey{r, c}]
	}
}

// set val to the [r, c]-th element of the matrix
func (m *Sparse) Set(r, c uint32, val float64) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	switch m.layout {
	case CSR:
		m.rows[r].set(c, val)
	case CSC:
		m.cols[c].set(r, val)
	default:
		if val == 0 {
			delete(m.dok, cellKey{r, c})
			return
		}
		m.dok[cellKey{r, c}] = val
	}
}

// get the r-th row of the matrix as a dense vector
func (m *Sparse) GetRow(r uint32) []float64 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	row := make([]float64, m.ncol)
	switch m.layout {
	case CSR:
		v := &m.rows[r]
		for k, c := range v.idx {
			row[c] = v.val[k]
		}
	case CSC:
		for c := uint32(0); c < m.ncol; c += 1 {
			row[c] = m.cols[c].get(r)
		}
	default:
		for key, val := range m.dok {
			if key.r == r {
				row[key.c] = val
			}
		}
	}
	return row
}

// get the c-th column of the matrix as a dense vector
func (m *Sparse) GetCol(c uint32) []float64 {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	col := make([]float64, m.nrow)
	switch m.layout {
	case CSR:
		for r := uint32(0); r < m.nrow; r += 1 {
			col[r] = m.rows[r].get(c)
		}
	case CSC:
		v := &m.cols[c]
		for k, r := range v.idx {
			col[r] = v.val[k]
		}
	default:
		for key, val := range m.dok {
			if key.c == c {
				col[key.r] = val
			}
		}
	}
	return col
}

// NonZero calls fn for every stored nonzero cell. The visiting order
// depends on the current layout and is not specified.
func (m *Sparse) NonZero(fn func(r, c uint32, val float64)) {
	switch m.layout {
	case CSR:
		for r := range m.rows {
			v := &m.rows[r]
			for k, c := range v.idx {
				if v.val[k] != 0 {
					fn(uint32(r), c, v.val[k])
				}
			}
		}
	case CSC:
		for c := range m.cols {
			v := &m.cols[c]
			for k, r := range v.idx {
				if v.val[k] != 0 {
					fn(r, uint32(c), v.val[k])
				}
			}
		}
	default:
		for key, val := range m.dok {
			fn(key.r, key.c, val)
		}
	}
}

// NNZ returns the number of stored cells.
func (m *Sparse) NNZ() int {
	n := 0
	m.NonZero(func(r, c uint32, val float64) { n += 1 })
	return n
}

// sum the c-th column
func (m *Sparse) ColSum(c uint32) float64 {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	sum := float64(0)
	if m.layout == CSC {
		for _, val := range m.cols[c].val {
			sum += val
		}
		return sum
	}
	for _, val := range m.GetCol(c) {
		sum += val
	}
	return sum
}

// multiply every element of the c-th column by f
func (m *Sparse) ScaleCol(c uint32, f float64) {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	switch m.layout {
	case CSR:
		for r := range m.rows {
			v := &m.rows[r]
			k := v.find(c)
			if k < len(v.idx) && v.idx[k] == c {
				v.val[k] *= f
			}
		}
	case CSC:
		v := &m.cols[c]
		for k := range v.val {
			v.val[k] *= f
		}
	default:
		for key := range m.dok {
			if key.c == c {
				m.dok[key] *= f
			}
		}
	}
}

// ToCSR transforms the internal representation to row-major order.
// This is useful for row slicing, for example when GetRow is called
// many times. Conversions mutate the matrix in place and must not
// run concurrently with any other access.
func (m *Sparse) ToCSR() {
	if m.layout == CSR {
		return
	}
	rows := make([]spVec, m.nrow)
	m.NonZero(func(r, c uint32, val float64) {
		rows[r].idx = append(rows[r].idx, c)
		rows[r].val = append(rows[r].val, val)
	})
	for r := range rows {
		sortVec(&rows[r])
	}
	m.rows = rows
	m.cols = nil
	m.dok = nil
	m.layout = CSR
}

// ToCSC transforms the internal representation to column-major order.
// This is useful for column slicing, for example when sampling full
// transition distributions.
func (m *Sparse) ToCSC() {
	if m.layout == CSC {
		return
	}
	cols := make([]spVec, m.ncol)
	m.NonZero(func(r, c uint32, val float64) {
		cols[c].idx = append(cols[c].idx, r)
		cols[c].val = append(cols[c].val, val)
	})
	for c := range cols {
		sortVec(&cols[c])
	}
	m.cols = cols
	m.rows = nil
	m.dok = nil
	m.layout = CSC
}

// ToDOK transforms the internal representation to a dictionary of
// keys. This is useful for accessing individual elements, for example
// when bigram probabilities are looked up many times.
func (m *Sparse) ToDOK() {
	if m.layout == DOK {
		return
	}
	dok := make(map[cellKey]float64)
	m.NonZero(func(r, c uint32, val float64) {
		dok[cellKey{r, c}] = val
	})
	m.dok = dok
	m.rows = nil
	m.cols = nil
	m.layout = DOK
}

func sortVec(v *spVec) {
	sort.Sort(byIndex{v})
}

type byIndex struct{ v *spVec }

func (s byIndex) Len() int           { return len(s.v.idx) }
func (s byIndex) Less(i, j int) bool { return s.v.idx[i] < s.v.idx[j] }
func (s byIndex) Swap(i, j int) {
	s.v.idx[i], s.v.idx[j] = s.v.idx[j], s.v.idx[i]
	s.v.val[i], s.v.val[j] = s.v.val[j], s.v.val[i]
}
