// Package fasta provides a streaming reader for protein FASTA files
package fasta

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/ChrisMcGann/PepMass/pkg/core"
)

// Reader provides streaming access to FASTA records as core.Peptide values.
// Sequences are returned as read; normalization and validation are left to
// the calculator so callers can decide how to handle invalid records.
type Reader struct {
	fr          *fasta.Reader
	sourceFile  string
	recordNum   int
	currentPept *core.Peptide
	err         error
}

// NewReader creates a new FASTA reader. sourceFile is recorded on every
// peptide and may be empty.
func NewReader(r io.Reader, sourceFile string) *Reader {
	template := linear.NewSeq("", nil, alphabet.Protein)
	return &Reader{
		fr:         fasta.NewReader(r, template),
		sourceFile: sourceFile,
	}
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	r.currentPept = nil
	if r.err != nil {
		return false
	}

	s, err := r.fr.Read()
	if err != nil {
		if err != io.EOF {
			r.err = fmt.Errorf("record %d: %w", r.recordNum+1, err)
		}
		return false
	}
	r.recordNum++

	ls, ok := s.(*linear.Seq)
	if !ok {
		r.err = fmt.Errorf("record %d: unexpected sequence type %T", r.recordNum, s)
		return false
	}

	r.currentPept = &core.Peptide{
		ID:          ls.ID,
		Description: strings.TrimSpace(ls.Desc),
		RawSequence: lettersToString(ls.Seq),
		SourceFile:  r.sourceFile,
	}
	return true
}

// Peptide returns the current record
func (r *Reader) Peptide() *core.Peptide {
	return r.currentPept
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// Count returns the number of records read so far.
func (r *Reader) Count() int {
	return r.recordNum
}

func lettersToString(ls alphabet.Letters) string {
	b := make([]byte, len(ls))
	for i, l := range ls {
		b[i] = byte(l)
	}
	return string(b)
}
