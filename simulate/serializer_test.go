package simulate

import (
	"path/filepath"
	"testing"

	"github.com/grailbio/genpriv/pedigree"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializerRoundTrip(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	path := filepath.Join(tmpdir, "samples.bin")

	pairs := []pedigree.RelatedPair{
		{Labeled: 2, Unlabeled: 9},
		{Labeled: 0, Unlabeled: 5},
		{Labeled: 0, Unlabeled: 3},
	}
	s, err := NewSerializer(path, true, pairs)
	require.NoError(t, err)

	iterations := [][]float64{
		{1.5, 2.5, 0.0}, // in header order: (0,3)=1.5, (0,5)=2.5, (2,9)=0.0
		{0.0, 3.25, 7.0},
	}
	for _, lengths := range iterations {
		s.Insert(0, 3, lengths[0])
		s.Insert(0, 5, lengths[1])
		s.Insert(2, 9, lengths[2])
		require.NoError(t, s.Flush())
	}
	require.NoError(t, s.Close())

	samples, err := ReadSamples(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 0.0}, samples[pedigree.NodeIdPair{Labeled: 0, Unlabeled: 3}])
	assert.Equal(t, []float64{2.5, 3.25}, samples[pedigree.NodeIdPair{Labeled: 0, Unlabeled: 5}])
	assert.Equal(t, []float64{0.0, 7.0}, samples[pedigree.NodeIdPair{Labeled: 2, Unlabeled: 9}])
}

func TestSerializerAppendsToExistingFileWithoutClobber(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	path := filepath.Join(tmpdir, "samples.bin")

	pairs := []pedigree.RelatedPair{{Labeled: 0, Unlabeled: 1}}
	s, err := NewSerializer(path, true, pairs)
	require.NoError(t, err)
	s.Insert(0, 1, 4.5)
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	// A second run without clobber resumes the file: the header is kept and
	// new iterations extend the same per-pair sequences.
	s, err = NewSerializer(path, false, pairs)
	require.NoError(t, err)
	s.Insert(0, 1, 6.25)
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	samples, err := ReadSamples(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{4.5, 6.25}, samples[pedigree.NodeIdPair{Labeled: 0, Unlabeled: 1}])
}

func TestSerializerClobberRewritesHeader(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	path := filepath.Join(tmpdir, "samples.bin")

	pairs := []pedigree.RelatedPair{{Labeled: 0, Unlabeled: 1}}
	s, err := NewSerializer(path, true, pairs)
	require.NoError(t, err)
	s.Insert(0, 1, 4.5)
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	s, err = NewSerializer(path, true, pairs)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	samples, err := ReadSamples(path)
	require.NoError(t, err)
	assert.Empty(t, samples[pedigree.NodeIdPair{Labeled: 0, Unlabeled: 1}])
}

func TestReadHeaderOnly(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	path := filepath.Join(tmpdir, "samples.bin")

	pairs := []pedigree.RelatedPair{{Labeled: 4, Unlabeled: 1}, {Labeled: 1, Unlabeled: 9}}
	s, err := NewSerializer(path, true, pairs)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	header, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, []pedigree.NodeIdPair{
		{Labeled: 1, Unlabeled: 9},
		{Labeled: 4, Unlabeled: 1},
	}, header.Pairs())
}
