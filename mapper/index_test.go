package mapper

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestLookup(t *testing.T) {
	ref := NewReference(">ref", "AGTCCTGATTAGCGGTTAGCGAAT")
	expect.EQ(t, ref.Lookup("TAG"), []int{9, 16})
	expect.EQ(t, ref.Lookup("AGTC"), []int{0})
	expect.EQ(t, len(ref.Lookup("AAAA")), 0)
	expect.EQ(t, len(ref.Lookup("AGTCCTGATTAGCGGTTAGCGAATA")), 0)
}

func TestLookupRebuildsOnLengthChange(t *testing.T) {
	ref := NewReference(">ref", "AGTCCTGATTAGCGGTTAGCGAAT")
	expect.True(t, ref.EnsureIndex(3))
	expect.False(t, ref.EnsureIndex(3))
	expect.EQ(t, ref.IndexedK(), 3)

	expect.EQ(t, ref.Lookup("GAT"), []int{6})
	expect.EQ(t, ref.IndexedK(), 3)

	// A query of a different length silently replaces the index.
	expect.EQ(t, ref.Lookup("GATT"), []int{6})
	expect.EQ(t, ref.IndexedK(), 4)

	ref.BuildIndex(2)
	expect.EQ(t, ref.IndexedK(), 2)
	expect.EQ(t, ref.Lookup("AG"), []int{0, 10, 17})
}

func TestLookupDegenerateK(t *testing.T) {
	ref := NewReference(">ref", "ACGT")
	expect.EQ(t, len(ref.Lookup("")), 0)
	expect.EQ(t, ref.IndexedK(), 0)
	expect.EQ(t, len(ref.Lookup("ACGTA")), 0)
	expect.EQ(t, ref.IndexedK(), 5)
}

func randomBases(r *rand.Rand, n int) string {
	const alphabet = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

// Every reported position must hold the queried k-mer, and every occurrence
// must be reported.
func TestLookupSoundAndComplete(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	bases := randomBases(r, 500)
	ref := NewReference(">random", bases)
	for k := 1; k <= 8; k++ {
		for pos := 0; pos+k <= len(bases); pos += 7 {
			kmer := bases[pos : pos+k]
			got := ref.Lookup(kmer)
			var want []int
			for p := 0; p+k <= len(bases); p++ {
				if bases[p:p+k] == kmer {
					want = append(want, p)
				}
			}
			expect.EQ(t, got, want, kmer)
		}
	}
}

func TestScoreAlignment(t *testing.T) {
	ref := NewReference(">ref", "AGTCCTGATTAGCGGTTAGCGAAT")
	read := NewRead(">read_1", "CCTGAT")
	expect.EQ(t, ref.ScoreAlignment(read, 0), 4)
	expect.EQ(t, ref.ScoreAlignment(read, 3), 0)
}

func TestScoreAlignmentOverflow(t *testing.T) {
	ref := NewReference(">ref", "AGTCCTGATTAGCGGTTAGCGAAT")
	// "GAAT" matches the last four reference bases; the remaining two bases
	// hang off the end.
	read := NewRead(">overhang", "GAATCC")
	expect.EQ(t, ref.ScoreAlignment(read, 20), 2)
	// Entirely past the end: every base is a mismatch, plus the gap.
	expect.EQ(t, ref.ScoreAlignment(read, 24), 6)
	expect.EQ(t, ref.ScoreAlignment(read, 26), 8)
}

func TestScoreAlignmentProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	bases := randomBases(r, 200)
	ref := NewReference(">random", bases)
	for trial := 0; trial < 200; trial++ {
		read := NewRead(">r", randomBases(r, 1+r.Intn(30)))
		pos := r.Intn(len(bases))
		inBounds := 0
		for i := 0; i < read.Len() && pos+i < len(bases); i++ {
			if read.Bases[i] != bases[pos+i] {
				inBounds++
			}
		}
		overflow := pos + read.Len() - len(bases)
		if overflow < 0 {
			overflow = 0
		}
		expect.EQ(t, ref.ScoreAlignment(read, pos), inBounds+overflow)
	}
}
