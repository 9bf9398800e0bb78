package reference_test

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandseq/alleles/interval"
	"github.com/strandseq/alleles/reference"
)

func TestInMemoryGenome(t *testing.T) {
	g := reference.New(map[string]string{
		"chr1": "ACGTACGT",
		"chr2": "TTTT",
	})
	assert.Equal(t, []string{"chr1", "chr2"}, g.Contigs())

	n, err := g.Len("chr1")
	assert.NoError(t, err)
	assert.Equal(t, interval.PosType(8), n)
	_, err = g.Len("chr9")
	assert.Error(t, err)

	bases, err := g.GetBases(interval.New("chr1", 2, 6))
	assert.NoError(t, err)
	assert.Equal(t, "GTAC", bases)

	// Empty ranges are valid and yield empty strings.
	bases, err = g.GetBases(interval.New("chr2", 4, 4))
	assert.NoError(t, err)
	assert.Equal(t, "", bases)

	_, err = g.GetBases(interval.New("chr1", 2, 9))
	assert.Error(t, err)
	_, err = g.GetBases(interval.New("chr1", -1, 3))
	assert.Error(t, err)
	_, err = g.GetBases(interval.New("chr9", 0, 1))
	assert.Error(t, err)
}

func TestIsValidInterval(t *testing.T) {
	g := reference.New(map[string]string{"chr1": "ACGTACGT"})
	assert.True(t, g.IsValidInterval(interval.New("chr1", 0, 8)))
	assert.True(t, g.IsValidInterval(interval.New("chr1", 3, 3)))
	assert.False(t, g.IsValidInterval(interval.New("chr1", -1, 2)))
	assert.False(t, g.IsValidInterval(interval.New("chr1", 0, 9)))
	assert.False(t, g.IsValidInterval(interval.New("chr1", 5, 4)))
	assert.False(t, g.IsValidInterval(interval.New("chr9", 0, 1)))
}

func TestReadFASTA(t *testing.T) {
	fasta := `>chr1 assembled from sample A
ACGTac
gt
>chr2
TTTT
`
	g, err := reference.ReadFASTA(strings.NewReader(fasta))
	require.NoError(t, err)
	assert.Equal(t, []string{"chr1", "chr2"}, g.Contigs())

	bases, err := g.GetBases(interval.New("chr1", 0, 8))
	assert.NoError(t, err)
	assert.Equal(t, "ACGTACGT", bases)

	bases, err = g.GetBases(interval.New("chr2", 0, 4))
	assert.NoError(t, err)
	assert.Equal(t, "TTTT", bases)
}

func TestReadFASTAMalformed(t *testing.T) {
	_, err := reference.ReadFASTA(strings.NewReader("ACGT\n"))
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	fapath := filepath.Join(tmpdir, "ref.fa")
	require.NoError(t, ioutil.WriteFile(fapath, []byte(">chr1\nACGT\n"), 0644))

	g, err := reference.Open(fapath)
	require.NoError(t, err)
	bases, err := g.GetBases(interval.New("chr1", 0, 4))
	assert.NoError(t, err)
	assert.Equal(t, "ACGT", bases)

	_, err = reference.Open(filepath.Join(tmpdir, "missing.fa"))
	assert.Error(t, err)
}
