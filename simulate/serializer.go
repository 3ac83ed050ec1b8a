// Package simulate drives the per-iteration IBD scoring loop and its binary
// sample format: one header of sorted (labeled, unlabeled) pairs, followed by
// one dense block of little-endian float64 shared lengths per iteration, in
// that same sorted order.
package simulate

import (
	"encoding/binary"
	"io"
	"io/ioutil"
	"math"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/genpriv/pedigree"
	pkgerrors "github.com/pkg/errors"
)

// Serializer accumulates one iteration's (unlabeled, shared) samples per
// anchor (labeled) node, then flushes them as a single sorted f64 block. It
// is constructed once per run and held open for the whole iteration loop.
// The header, naming every pair any run against the file will insert, is
// written by the first run only; later runs append their blocks under it.
type Serializer struct {
	out     file.File
	w       io.Writer
	buffers map[uint32][]unlabeledShared
}

type unlabeledShared struct {
	unlabeled uint32
	shared    float64
}

// NewSerializer opens outfile for a run's sample blocks. With clobber set,
// any existing file is replaced and the sorted pair header is rewritten.
// Without clobber, an existing file is opened in append mode: its header
// (and any prior runs' blocks) are kept and this run's blocks extend the
// same per-pair sample sequences. file.File has no native append, so append
// is emulated by re-writing the prior bytes into the fresh handle before
// the first new block.
func NewSerializer(outfile string, clobber bool, relatedPairs []pedigree.RelatedPair) (*Serializer, error) {
	ctx := vcontext.Background()
	var previous []byte
	if !clobber {
		if existing, err := file.Open(ctx, outfile); err == nil {
			previous, err = ioutil.ReadAll(existing.Reader(ctx))
			if err != nil {
				_ = existing.Close(ctx)
				return nil, pkgerrors.Wrapf(err, "simulate: reading %s for append", outfile)
			}
			if err := existing.Close(ctx); err != nil {
				return nil, pkgerrors.Wrapf(err, "simulate: closing %s", outfile)
			}
		} else if e, ok := err.(*errors.Error); !ok || e.Kind != errors.NotExist {
			return nil, pkgerrors.Wrapf(err, "simulate: checking %s", outfile)
		}
	}

	out, err := file.Create(ctx, outfile)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "simulate: creating %s", outfile)
	}

	s := &Serializer{
		out:     out,
		w:       out.Writer(ctx),
		buffers: make(map[uint32][]unlabeledShared),
	}
	if len(previous) > 0 {
		if _, err := s.w.Write(previous); err != nil {
			return nil, pkgerrors.Wrapf(err, "simulate: restoring %s for append", outfile)
		}
		return s, nil
	}
	if err := s.writeHeader(relatedPairs); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Serializer) writeHeader(relatedPairs []pedigree.RelatedPair) error {
	sorted := make([]pedigree.RelatedPair, len(relatedPairs))
	copy(sorted, relatedPairs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Labeled != sorted[j].Labeled {
			return sorted[i].Labeled < sorted[j].Labeled
		}
		return sorted[i].Unlabeled < sorted[j].Unlabeled
	})

	body := make([]byte, 8*len(sorted))
	for i, pair := range sorted {
		binary.LittleEndian.PutUint32(body[i*8:], pair.Labeled)
		binary.LittleEndian.PutUint32(body[i*8+4:], pair.Unlabeled)
	}

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(body)))
	if _, err := s.w.Write(lenBuf[:]); err != nil {
		return pkgerrors.Wrap(err, "simulate: writing header length")
	}
	if _, err := s.w.Write(body); err != nil {
		return pkgerrors.Wrap(err, "simulate: writing header body")
	}
	return nil
}

// Insert buffers one pair's observed shared length for the current
// iteration, keyed by its labeled (anchor) node.
func (s *Serializer) Insert(anchor, unlabeled uint32, shared float64) {
	s.buffers[anchor] = append(s.buffers[anchor], unlabeledShared{unlabeled: unlabeled, shared: shared})
}

// Flush writes the current iteration's buffered samples as one dense f64
// block, sorted by (anchor, unlabeled) to match the header order, then
// clears the buffers for the next iteration. Flush is the only commit
// point: a crash before it returns leaves no partial iteration in the file.
func (s *Serializer) Flush() error {
	anchors := make([]uint32, 0, len(s.buffers))
	for anchor := range s.buffers {
		anchors = append(anchors, anchor)
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i] < anchors[j] })

	for _, anchor := range anchors {
		bucket := s.buffers[anchor]
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].unlabeled < bucket[j].unlabeled })
		block := make([]byte, 8*len(bucket))
		for i, entry := range bucket {
			binary.LittleEndian.PutUint64(block[i*8:], math.Float64bits(entry.shared))
		}
		if _, err := s.w.Write(block); err != nil {
			return pkgerrors.Wrap(err, "simulate: writing sample block")
		}
	}
	for anchor := range s.buffers {
		delete(s.buffers, anchor)
	}
	return nil
}

// Close closes the underlying file.
func (s *Serializer) Close() error {
	return s.out.Close(vcontext.Background())
}
