package request

import (
	"fmt"

	"github.com/yumyai/phamfasta/pkg/archive"
	"github.com/yumyai/phamfasta/pkg/extract"
	"github.com/yumyai/phamfasta/pkg/model"
)

// Structure for an export run
type ExportRequest struct {
	Phages     []string `json:"phages"`      // Genome names
	Clusters   []string `json:"clusters"`    // Cluster tokens, prefix matched; "Singleton" for unassigned
	Phams      []string `json:"phams"`       // Family ids
	Sequence   string   `json:"sequence"`    // "aa" (default) or "nt"
	OrganizeBy string   `json:"organize_by"` // "genome" (default) or "family"
	RunID      string   `json:"run_id"`      // Optional, generated when empty
}

// Criteria validates the request and converts it to selection criteria.
func (r ExportRequest) Criteria() (*model.SelectionCriteria, model.Organization, error) {
	org, err := model.ParseOrganization(r.OrganizeBy)
	if err != nil {
		return nil, org, err
	}

	kind := NewSequenceKind(r.Sequence)
	if kind == SequenceUnknown {
		return nil, org, &model.SelectionError{Field: "sequence", Value: r.Sequence, Msg: "expected aa or nt"}
	}

	if err := extract.ValidateRunID(r.RunID); err != nil {
		return nil, org, err
	}

	c := model.NewSelectionCriteria()
	c.AddNames(r.Phages...)
	c.AddClusters(r.Clusters...)
	c.AddFamilies(r.Phams...)
	c.AminoAcid = kind == SequenceAminoAcid
	return c, org, nil
}

type ExportResponse struct {
	Success bool            `json:"success"`
	Report  *archive.Report `json:"report,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type ClustersResponse struct {
	Token    string   `json:"token"`
	Clusters []string `json:"clusters"`
}

func (r ExportRequest) String() string {
	return fmt.Sprintf("phages=%v clusters=%v phams=%v sequence=%s organize_by=%s",
		r.Phages, r.Clusters, r.Phams, r.Sequence, r.OrganizeBy)
}
