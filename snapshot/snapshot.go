// Package snapshot persists a model as a single blob holding, in
// order, the association matrix, the unigram table and the vocabulary
// row order. Loading reconstructs all three or fails with
// ErrCorruptModel.
package snapshot

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lightsamurai/DSGeneration/matrix"
	"github.com/lightsamurai/DSGeneration/model"
	"github.com/lightsamurai/DSGeneration/vocab"
)

var ErrCorruptModel = errors.New("snapshot: corrupt model snapshot")

type cellData struct {
	Row, Col uint32
	Val      float64
}

// on-disk layout; field order is part of the format
type blob struct {
	Rows, Cols  uint32
	Cells       []cellData
	Unigrams    map[string]float64
	Words       []string
	BigramReady bool
}

// Encode writes m to w as a gzip-compressed gob blob.
func Encode(w io.Writer, m *model.Model) error {
	r, c := m.Matrix().Shape()
	b := blob{
		Rows:        r,
		Cols:        c,
		Unigrams:    m.Unigrams(),
		Words:       m.Vocab().Words(),
		BigramReady: m.BigramReady(),
	}
	m.Matrix().NonZero(func(row, col uint32, val float64) {
		b.Cells = append(b.Cells, cellData{Row: row, Col: col, Val: val})
	})

	zw := gzip.NewWriter(w)
	if err := gob.NewEncoder(zw).Encode(b); err != nil {
		return err
	}
	return zw.Close()
}

// Decode reads a snapshot back into a model, validating that the
// three components agree before handing anything out.
func Decode(r io.Reader) (*model.Model, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	defer zr.Close()

	var b blob
	if err := gob.NewDecoder(zr).Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}

	if b.Rows == 0 || b.Cols == 0 {
		return nil, fmt.Errorf("%w: empty shape %dx%d", ErrCorruptModel, b.Rows, b.Cols)
	}
	if uint32(len(b.Words)) != b.Rows {
		return nil, fmt.Errorf("%w: %d words for %d matrix rows",
			ErrCorruptModel, len(b.Words), b.Rows)
	}

	v := vocab.New()
	for _, w := range b.Words {
		if v.Contains(w) {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrCorruptModel, w)
		}
		v.Add(w)
		if _, ok := b.Unigrams[w]; !ok {
			return nil, fmt.Errorf("%w: no unigram probability for %q", ErrCorruptModel, w)
		}
	}

	mat := matrix.NewSparse(b.Rows, b.Cols)
	for _, cell := range b.Cells {
		if cell.Row >= b.Rows || cell.Col >= b.Cols {
			return nil, fmt.Errorf("%w: cell [%d, %d] outside %dx%d",
				ErrCorruptModel, cell.Row, cell.Col, b.Rows, b.Cols)
		}
		mat.Set(cell.Row, cell.Col, cell.Val)
	}

	return model.New(mat, v, vocab.Unigrams(b.Unigrams), b.BigramReady), nil
}

// Save serializes m to the named file.
func Save(fn string, m *model.Model) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	return Encode(out, m)
}

// Load deserializes a model from the named file.
func Load(fn string) (*model.Model, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file)
}
