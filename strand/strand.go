package strand

// Depth holds allele depths split by strand. Index 0 is the reference allele,
// indices >= 1 are the alternate alleles in the order of the ALT column.
type Depth struct {
	Fwd []int
	Rev []int
}

// Allele returns the total depth of allele i on both strands.
func (d Depth) Allele(i int) int {
	if i >= len(d.Fwd) {
		return 0
	}
	return d.Fwd[i] + d.Rev[i]
}

// Total returns the summed depth over all alleles.
func (d Depth) Total() int {
	var ans int
	for i := range d.Fwd {
		ans += d.Fwd[i] + d.Rev[i]
	}
	return ans
}

// OnBoth is true if allele i is observed on the forward and the reverse strand.
func (d Depth) OnBoth(i int) bool {
	return i < len(d.Fwd) && d.Fwd[i] > 0 && d.Rev[i] > 0
}

// MinMerge lowers each strand depth of d to the matching depth in o.
// Used when two columns measure the same cell, so evidence is never counted twice.
func (d Depth) MinMerge(o Depth) {
	for i := range d.Fwd {
		if i >= len(o.Fwd) {
			break
		}
		if o.Fwd[i] < d.Fwd[i] {
			d.Fwd[i] = o.Fwd[i]
		}
		if o.Rev[i] < d.Rev[i] {
			d.Rev[i] = o.Rev[i]
		}
	}
}

// IsSingleStrand reports the single-strand artifact signature between the
// reference and first alternate allele: the alt is seen on at most one strand
// and never shares that strand with the reference.
func IsSingleStrand(d Depth) bool {
	if len(d.Fwd) < 2 {
		return false
	}
	return d.Fwd[1]*d.Rev[1] == 0 && d.Fwd[0]*d.Fwd[1] == 0 && d.Rev[0]*d.Rev[1] == 0
}
