package simulate

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/genpriv/pedigree"
	"github.com/pkg/errors"
)

// Reader decodes a Serializer's output: the header's sorted pair list, then
// every iteration's dense f64 block, striding each block against the header
// to reconstruct per-pair sample sequences.
type Reader struct {
	pairs []pedigree.NodeIdPair
}

// Pairs returns the header's sorted (labeled, unlabeled) pair list.
func (r *Reader) Pairs() []pedigree.NodeIdPair { return r.pairs }

// ReadHeader opens path and decodes its header only, without reading any
// sample blocks.
func ReadHeader(path string) (*Reader, error) {
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "simulate: opening %s", path)
	}
	defer func() { _ = f.Close(ctx) }()
	return readHeader(f.Reader(ctx), path)
}

func readHeader(r io.Reader, path string) (*Reader, error) {
	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, errors.Wrapf(err, "simulate: reading header length from %s", path)
	}
	byteCount := binary.LittleEndian.Uint64(lenBuf[:])
	if byteCount%8 != 0 {
		return nil, errors.Errorf("simulate: %s header length %d is not a multiple of 8", path, byteCount)
	}
	body := make([]byte, byteCount)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, errors.Wrapf(err, "simulate: reading header body from %s", path)
	}
	n := len(body) / 8
	pairs := make([]pedigree.NodeIdPair, n)
	for i := 0; i < n; i++ {
		pairs[i] = pedigree.NodeIdPair{
			Labeled:   binary.LittleEndian.Uint32(body[i*8:]),
			Unlabeled: binary.LittleEndian.Uint32(body[i*8+4:]),
		}
	}
	return &Reader{pairs: pairs}, nil
}

// ReadSamples opens path and decodes its header plus every iteration's
// sample block, returning the full sample sequence observed for each pair
// named in the header, in iteration order.
func ReadSamples(path string) (map[pedigree.NodeIdPair][]float64, error) {
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "simulate: opening %s", path)
	}
	defer func() { _ = f.Close(ctx) }()

	r := f.Reader(ctx)
	header, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}

	samples := make(map[pedigree.NodeIdPair][]float64, len(header.pairs))
	block := make([]byte, 8*len(header.pairs))
	for {
		if len(block) == 0 {
			break
		}
		if _, err := io.ReadFull(r, block); err != nil {
			if errors.Cause(err) == io.EOF || err == io.EOF {
				break
			}
			if errors.Cause(err) == io.ErrUnexpectedEOF {
				return nil, errors.Errorf("simulate: %s ends mid-iteration block", path)
			}
			return nil, errors.Wrapf(err, "simulate: reading sample block from %s", path)
		}
		for i, pair := range header.pairs {
			bits := binary.LittleEndian.Uint64(block[i*8:])
			samples[pair] = append(samples[pair], math.Float64frombits(bits))
		}
	}
	return samples, nil
}
