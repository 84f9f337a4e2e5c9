package model

import (
	"fmt"
	"slices"
	"strings"
)

// SelectionCriteria holds the filter state for one extraction run. Each list
// is an ordered set: entries keep first-seen order and duplicates are dropped.
type SelectionCriteria struct {
	Names     []string `json:"phages"`
	Clusters  []string `json:"clusters"`
	Families  []string `json:"phams"`
	AminoAcid bool     `json:"amino_acid"`
}

// NewSelectionCriteria starts in amino-acid mode.
func NewSelectionCriteria() *SelectionCriteria {
	return &SelectionCriteria{AminoAcid: true}
}

// SplitTokens splits comma separated input and trims each token. Empty tokens
// are discarded.
func SplitTokens(inputs ...string) []string {
	var out []string
	for _, in := range inputs {
		for _, tok := range strings.Split(in, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

func addUnique(list []string, tokens []string) []string {
	for _, t := range tokens {
		if !slices.Contains(list, t) {
			list = append(list, t)
		}
	}
	return list
}

func removeAll(field string, list []string, tokens []string) ([]string, error) {
	for _, t := range tokens {
		i := slices.Index(list, t)
		if i < 0 {
			return list, &SelectionError{Field: field, Value: t, Msg: "not in current selection"}
		}
		list = slices.Delete(list, i, i+1)
	}
	return list, nil
}

func (c *SelectionCriteria) AddNames(input ...string) {
	c.Names = addUnique(c.Names, SplitTokens(input...))
}

func (c *SelectionCriteria) AddClusters(input ...string) {
	c.Clusters = addUnique(c.Clusters, SplitTokens(input...))
}

func (c *SelectionCriteria) AddFamilies(input ...string) {
	c.Families = addUnique(c.Families, SplitTokens(input...))
}

// RemoveNames stops at the first token that is not selected; tokens before it
// have already been removed.
func (c *SelectionCriteria) RemoveNames(input ...string) (err error) {
	c.Names, err = removeAll("phage", c.Names, SplitTokens(input...))
	return err
}

func (c *SelectionCriteria) RemoveClusters(input ...string) (err error) {
	c.Clusters, err = removeAll("cluster", c.Clusters, SplitTokens(input...))
	return err
}

func (c *SelectionCriteria) RemoveFamilies(input ...string) (err error) {
	c.Families, err = removeAll("pham", c.Families, SplitTokens(input...))
	return err
}

func (c *SelectionCriteria) ToggleAminoAcid() {
	c.AminoAcid = !c.AminoAcid
}

func (c *SelectionCriteria) Reset() {
	*c = *NewSelectionCriteria()
}

// Clone returns a deep copy, so a finished run's criteria can seed a new one.
func (c *SelectionCriteria) Clone() *SelectionCriteria {
	return &SelectionCriteria{
		Names:     slices.Clone(c.Names),
		Clusters:  slices.Clone(c.Clusters),
		Families:  slices.Clone(c.Families),
		AminoAcid: c.AminoAcid,
	}
}

// Normalize trims entries and drops blanks and duplicates. Criteria built
// from JSON or flags go through here before a run.
func (c *SelectionCriteria) Normalize() {
	c.Names = addUnique(nil, SplitTokens(c.Names...))
	c.Clusters = addUnique(nil, SplitTokens(c.Clusters...))
	c.Families = addUnique(nil, SplitTokens(c.Families...))
}

func (c *SelectionCriteria) Describe() string {
	kind := "Retrieving Amino Acids"
	if !c.AminoAcid {
		kind = "Retrieving Nucleotides"
	}
	return fmt.Sprintf("Phages: %v Clusters: %v Phams: %v\n%s", c.Names, c.Clusters, c.Families, kind)
}
