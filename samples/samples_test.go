package samples

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertgenlab/gonomics/vcf"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	names := []string{"bulk1.bam", "bulk2", "cellA.bam", "cellB", "cellB_rep", "cellC", "cellD.bam"}
	l := Lists{
		Excluded:   map[string]bool{"cellC": true},
		Haploid:    map[string]bool{"cellD": true},
		Replicates: map[string]string{"cellB_rep": "cellB"},
	}
	r, err := NewRegistry(names, 2, l)
	require.NoError(t, err)

	assert.Equal(t, []string{"cellA", "cellB", "cellD"}, r.Names())
	assert.Equal(t, 2, r.Cells[0].Ploidy)
	assert.Equal(t, 1, r.Cells[2].Ploidy)

	assert.Equal(t, -1, r.Cell(0))
	assert.Equal(t, 0, r.Cell(2))
	assert.Equal(t, 1, r.Cell(3))
	assert.Equal(t, 1, r.Cell(4)) // replicate column feeds its representative
	assert.Equal(t, 3, r.Rep(4))
	assert.Equal(t, -1, r.Cell(5))
	assert.Equal(t, 2, r.Cell(6))
}

func TestNewRegistryHaploidCells(t *testing.T) {
	r, err := NewRegistry([]string{"bulk", "c1", "c2"}, 1, Lists{HaploidCells: true})
	require.NoError(t, err)
	for _, c := range r.Cells {
		assert.Equal(t, 1, c.Ploidy)
	}

	_, err = NewRegistry([]string{"bulk"}, 2, Lists{})
	assert.Error(t, err)
}

func TestNamesFromHeader(t *testing.T) {
	h := vcf.Header{Samples: map[string]int{"c2": 2, "bulk": 0, "c1": 1}}
	assert.Equal(t, []string{"bulk", "c1", "c2"}, NamesFromHeader(h))
}

func TestReadLists(t *testing.T) {
	dir := t.TempDir()
	listFile := filepath.Join(dir, "hap.txt")
	require.NoError(t, os.WriteFile(listFile, []byte("cellA\textra\ncellB\n"), 0644))
	repFile := filepath.Join(dir, "rep.txt")
	require.NoError(t, os.WriteFile(repFile, []byte("cellA cellA_1  cellA_2\ncellB\tcellB_1\n"), 0644))

	assert.Equal(t, map[string]bool{"cellA": true, "cellB": true}, ReadList(listFile))
	assert.Equal(t, map[string]string{"cellA_1": "cellA", "cellA_2": "cellA", "cellB_1": "cellB"}, ReadReplicates(repFile))
	assert.Empty(t, ReadList(""))
}

func TestReadListsNoFinalNewline(t *testing.T) {
	dir := t.TempDir()
	listFile := filepath.Join(dir, "excluded.txt")
	require.NoError(t, os.WriteFile(listFile, []byte("# excluded cells\ncellA\n\ncellB"), 0644))
	repFile := filepath.Join(dir, "rep.txt")
	require.NoError(t, os.WriteFile(repFile, []byte("cellA cellA_1\ncellB cellB_1"), 0644))

	assert.Equal(t, map[string]bool{"cellA": true, "cellB": true}, ReadList(listFile))
	assert.Equal(t, map[string]string{"cellA_1": "cellA", "cellB_1": "cellB"}, ReadReplicates(repFile))
}
