package request

type SequenceKind int

const (
	SequenceAminoAcid SequenceKind = iota
	SequenceNucleotide
	SequenceUnknown
)

func (s SequenceKind) String() string {
	switch s {
	case SequenceAminoAcid:
		return "aa"
	case SequenceNucleotide:
		return "nt"
	default:
		return "unknown"
	}
}

func NewSequenceKind(field string) SequenceKind {
	switch field {
	case "aa", "amino_acid", "protein", "":
		return SequenceAminoAcid // default
	case "nt", "nucleotide", "dna":
		return SequenceNucleotide
	default:
		return SequenceUnknown
	}
}
