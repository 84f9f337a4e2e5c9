package request

import (
	"errors"
	"slices"
	"testing"

	"github.com/yumyai/phamfasta/pkg/model"
)

func TestNewSequenceKind(t *testing.T) {
	tests := map[string]SequenceKind{
		"":           SequenceAminoAcid,
		"aa":         SequenceAminoAcid,
		"protein":    SequenceAminoAcid,
		"nt":         SequenceNucleotide,
		"nucleotide": SequenceNucleotide,
		"rna":        SequenceUnknown,
	}
	for in, want := range tests {
		if got := NewSequenceKind(in); got != want {
			t.Errorf("NewSequenceKind(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExportRequestCriteria(t *testing.T) {
	req := ExportRequest{
		Phages:     []string{"Alpha", "Alpha,Gus"},
		Clusters:   []string{"F", " "},
		Phams:      []string{"100"},
		Sequence:   "nt",
		OrganizeBy: "family",
	}
	c, org, err := req.Criteria()
	if err != nil {
		t.Fatalf("Criteria: %v", err)
	}
	if org != model.ByFamily {
		t.Errorf("org = %v", org)
	}
	if c.AminoAcid {
		t.Error("nt request produced amino-acid criteria")
	}
	if !slices.Equal(c.Names, []string{"Alpha", "Gus"}) || !slices.Equal(c.Clusters, []string{"F"}) {
		t.Errorf("criteria = %+v", c)
	}
}

func TestExportRequestInvalid(t *testing.T) {
	for _, req := range []ExportRequest{
		{Sequence: "rna"},
		{OrganizeBy: "cluster"},
		{RunID: "a/b"},
		{RunID: ".."},
	} {
		_, _, err := req.Criteria()
		var selErr *model.SelectionError
		if !errors.As(err, &selErr) {
			t.Errorf("%s: err = %v, want SelectionError", req, err)
		}
	}
}
