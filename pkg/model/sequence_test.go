package model

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const seq100 = "ACGTTGCAACACGTTGCAACACGTTGCAACACGTTGCAACACGTTGCAACACGTTGCAACACGTTGCAACACGTTGCAACACGTTGCAACGGGGGTTTTT"

func TestExtractRegion(t *testing.T) {
	genome := []byte(seq100)

	tests := []struct {
		name        string
		start, stop int
		want        string
		wantErr     bool
	}{
		{name: "Linear", start: 50, stop: 60, want: "ACGTTGCAAC"},
		{name: "WrapsOrigin", start: 90, stop: 10, want: "GGGGGTTTTTACGTTGCAAC"},
		{name: "Empty", start: 5, stop: 5, want: ""},
		{name: "WholeGenome", start: 0, stop: 100, want: seq100},
		{name: "StopPastEnd", start: 90, stop: 101, wantErr: true},
		{name: "NegativeStart", start: -1, stop: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractRegion(genome, tt.start, tt.stop)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("ExtractRegion(%d, %d) = %q, want %q", tt.start, tt.stop, got, tt.want)
			}
		})
	}
}

func TestExtractRegionCopies(t *testing.T) {
	genome := []byte("ACGTACGT")
	region, err := ExtractRegion(genome, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	region[0] = 'N'
	if string(genome) != "ACGTACGT" {
		t.Errorf("genome modified through region: %s", genome)
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ATGC", "GCAT"},
		{"AAAC", "GTTT"},
		{"AACGTTTG", "CAAACGTT"},
		{"CCCGGG", "CCCGGG"},
		{"acgtn", "nacgt"},
		{"", ""},
	}
	for _, tt := range tests {
		in := []byte(tt.in)
		got, err := ReverseComplement(in)
		if err != nil {
			t.Errorf("ReverseComplement(%q): %v", tt.in, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if string(in) != tt.in {
			t.Errorf("input modified to %q", in)
		}
	}
}

func TestReverseComplementRejectsInvalidBytes(t *testing.T) {
	for _, in := range []string{"ACGU", "ACGE", "AC1G", "AC.G", "ACG*", "acgu"} {
		got, err := ReverseComplement([]byte(in))
		if err == nil {
			t.Errorf("ReverseComplement(%q) = %q, want error", in, got)
		}
	}
}

func materializeRepo() *fakeRepo {
	return &fakeRepo{
		genes: []*Gene{
			{ID: "P07_1", GenomeID: "P07", Name: "Solo_1", Start: 10, Stop: 30, Orientation: Reverse, Translation: "MKV"},
			{ID: "P07_2", GenomeID: "P07", Name: "Solo_2", Start: 90, Stop: 10, Orientation: Forward, Translation: "MGG"},
			{ID: "P07_3", GenomeID: "P07", Name: "Solo_3", Start: 50, Stop: 60, Orientation: Forward, Translation: "MT"},
			{ID: "P07_4", GenomeID: "P07", Name: "Solo_4", Start: 10, Stop: 20, Orientation: "X", Translation: "MX"},
			{ID: "P07_5", GenomeID: "P07", Name: "Solo_5", Start: 95, Stop: 120, Orientation: Forward, Translation: "MZ"},
			{ID: "P07_6", GenomeID: "P07", Name: "Solo_6", Start: 90, Stop: 10, Orientation: Reverse, Translation: "MW"},
			{ID: "P08_1", GenomeID: "P08", Name: "Rna_1", Start: 0, Stop: 4, Orientation: Reverse, Translation: "M"},
			{ID: "P08_2", GenomeID: "P08", Name: "Rna_2", Start: 0, Stop: 4, Orientation: Forward, Translation: "M"},
		},
		sequences: map[string]string{"P07": seq100, "P08": "ACGUACGU"},
	}
}

func TestMaterializeNucleotide(t *testing.T) {
	m := &SequenceMaterializer{Genes: materializeRepo(), Sequences: materializeRepo()}

	tests := []struct {
		geneID   string
		wantSeq  string
		wantDesc string
	}{
		{"P07_1", "GTTGCAACGTGTTGCAACGT", "Nucleotide sequence of gene Solo_1 from P07|R|10|30"},
		{"P07_2", "GGGGGTTTTTACGTTGCAAC", "Nucleotide sequence of gene Solo_2 from P07|F|90|10"},
		{"P07_3", "ACGTTGCAAC", "Nucleotide sequence of gene Solo_3 from P07|F|50|60"},
		{"P07_6", "GTTGCAACGTAAAAACCCCC", "Nucleotide sequence of gene Solo_6 from P07|R|90|10"},
		{"P08_2", "ACGU", "Nucleotide sequence of gene Rna_2 from P08|F|0|4"},
	}

	for _, tt := range tests {
		rec, err := m.Materialize(context.Background(), tt.geneID)
		if err != nil {
			t.Fatalf("Materialize(%s): %v", tt.geneID, err)
		}
		if string(rec.Sequence) != tt.wantSeq {
			t.Errorf("%s sequence = %s, want %s", tt.geneID, rec.Sequence, tt.wantSeq)
		}
		if rec.Description != tt.wantDesc {
			t.Errorf("%s description = %q, want %q", tt.geneID, rec.Description, tt.wantDesc)
		}
		if !strings.HasSuffix(rec.ID, "|") || rec.AminoAcid {
			t.Errorf("%s header fields = %+v", tt.geneID, rec)
		}
	}
}

func TestMaterializeNucleotideErrors(t *testing.T) {
	repo := materializeRepo()
	m := &SequenceMaterializer{Genes: repo, Sequences: repo}

	// Unknown orientation, coordinates past the end, a reverse gene with a
	// byte the complement table does not cover.
	for _, id := range []string{"P07_4", "P07_5", "P08_1"} {
		_, err := m.Materialize(context.Background(), id)
		var matErr *MaterializationError
		if !errors.As(err, &matErr) || matErr.GeneID != id {
			t.Errorf("Materialize(%s) = %v, want MaterializationError", id, err)
		}
	}

	_, err := m.Materialize(context.Background(), "P08_1")
	if err == nil || !strings.Contains(err.Error(), `'U'`) {
		t.Errorf("error should name the invalid byte: %v", err)
	}

	_, err = m.Materialize(context.Background(), "missing")
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Errorf("missing gene: got %v, want RepositoryError", err)
	}
}

func TestMaterializeAminoAcid(t *testing.T) {
	repo := materializeRepo()
	m := &SequenceMaterializer{Genes: repo, Sequences: repo, AminoAcid: true}

	// Orientation and coordinates are not checked for translations.
	recs, err := m.MaterializeAll(context.Background(), []string{"P07_1", "P07_4", "P07_5"})
	if err != nil {
		t.Fatalf("MaterializeAll: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("records = %d", len(recs))
	}
	if string(recs[0].Sequence) != "MKV" || !recs[0].AminoAcid {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[0].Description != "Amino acid sequence of gene Solo_1 from phage P07|R|10|30" {
		t.Errorf("description = %q", recs[0].Description)
	}
	if len(repo.seqFetches) != 0 {
		t.Errorf("amino-acid mode fetched genome sequences: %v", repo.seqFetches)
	}
}

func TestMaterializeAllStopsAtFirstError(t *testing.T) {
	repo := materializeRepo()
	m := &SequenceMaterializer{Genes: repo, Sequences: repo}

	recs, err := m.MaterializeAll(context.Background(), []string{"P07_3", "P07_4", "P07_1"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if recs != nil {
		t.Errorf("partial records returned: %d", len(recs))
	}
}
