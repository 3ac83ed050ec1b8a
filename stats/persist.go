package stats

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io/ioutil"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/genpriv/pedigree"
)

// persistedDistribution is the opaque on-disk shape of a fitted
// Distribution: the per-pair fits, the catch-all cryptic fit, and the
// labeled node ids, exactly what NewDistribution needs to rebuild it.
type persistedDistribution struct {
	Distributions map[pedigree.NodeIdPair]HurdleGammaParams
	Cryptic       HurdleGammaParams
	LabeledNodes  []uint32
}

// Save writes d to path as an opaque gob-encoded blob, refusing to
// overwrite an existing file unless clobber is set.
func Save(path string, clobber bool, d *Distribution) error {
	ctx := vcontext.Background()
	if !clobber {
		if existing, err := file.Open(ctx, path); err == nil {
			_ = existing.Close(ctx)
			return errors.E(fmt.Sprintf("stats: %s already exists and clobber is false", path))
		} else if e, ok := err.(*errors.Error); !ok || e.Kind != errors.NotExist {
			return errors.E(err, "stats: checking for existing distribution file")
		}
	}

	plain := make(map[pedigree.NodeIdPair]HurdleGammaParams, len(d.distributions))
	for key, params := range d.distributions {
		plain[key] = params.gamma
	}
	persisted := persistedDistribution{
		Distributions: plain,
		Cryptic:       d.cryptic.gamma,
		LabeledNodes:  d.LabeledNodes,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&persisted); err != nil {
		return errors.E(err, "stats: encoding distribution")
	}

	f, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "stats: creating distribution file")
	}
	if _, err := f.Writer(ctx).Write(buf.Bytes()); err != nil {
		_ = f.Close(ctx)
		return errors.E(err, "stats: writing distribution file")
	}
	return f.Close(ctx)
}

// LoadDistribution reads a Distribution previously written by Save.
func LoadDistribution(path string) (*Distribution, error) {
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "stats: opening distribution file")
	}
	defer func() { _ = f.Close(ctx) }()

	raw, err := ioutil.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "stats: reading distribution file")
	}

	var persisted persistedDistribution
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&persisted); err != nil {
		return nil, errors.E(err, "stats: decoding distribution file")
	}
	return NewDistribution(persisted.Distributions, persisted.Cryptic, persisted.LabeledNodes), nil
}
