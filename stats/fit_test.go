package stats

import (
	"path/filepath"
	"testing"

	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/genpriv/simulate"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestFitDistributionsDropsPairsWithTooFewSamples(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	path := filepath.Join(tmpdir, "samples.bin")

	pairs := []pedigree.RelatedPair{{Labeled: 0, Unlabeled: 1}, {Labeled: 0, Unlabeled: 2}}
	s, err := simulate.NewSerializer(path, true, pairs)
	require.NoError(t, err)

	rich := syntheticGammaSamples(3, 4, 20, 11)
	for iter := 0; iter < len(rich); iter++ {
		s.Insert(0, 1, rich[iter])
		s.Insert(0, 2, 0) // every sample zero: fewer than 5 nonzero
		require.NoError(t, s.Flush())
	}
	require.NoError(t, s.Close())

	results, err := FitDistributions(path, rand.NewSource(5))
	require.NoError(t, err)
	_, ok := results[pedigree.NodeIdPair{Labeled: 0, Unlabeled: 1}]
	assert.True(t, ok)
	_, ok = results[pedigree.NodeIdPair{Labeled: 0, Unlabeled: 2}]
	assert.False(t, ok)
}
