package domain

import (
	"strconv"
	"strings"
)

// Ranks kept when building a species list
const (
	RankSpecies    = "SPECIES"
	RankSubspecies = "SUBSPECIES"
)

// SourceGBIF is written to the source column of fetched rows
const SourceGBIF = "GBIF"

// SpeciesListHeader is the column order of a fetched species list.
// The synonymizer reads taxonID, canonicalName, synonym and speciesKey from it.
var SpeciesListHeader = []string{
	"taxonID", "species", "genus", "class", "rank", "parent", "authorship", "order",
	"publishedIn", "kingdom", "family", "scientificName", "phylum", "parentOfTaxon",
	"name", "canonicalName", "source", "synonym", "speciesKey",
}

// OccurrenceSpecies is one distinct species of an occurrence export
type OccurrenceSpecies struct {
	Name string // species column
	Key  string // specieskey column
}

// NameUsage is a species API name usage, limited to the fields the species list keeps
type NameUsage struct {
	Key            int64  `json:"key"`
	TaxonID        string `json:"taxonID"`
	Species        string `json:"species"`
	Genus          string `json:"genus"`
	Class          string `json:"class"`
	Rank           string `json:"rank"`
	Parent         string `json:"parent"`
	Authorship     string `json:"authorship"`
	Order          string `json:"order"`
	PublishedIn    string `json:"publishedIn"`
	Kingdom        string `json:"kingdom"`
	Family         string `json:"family"`
	ScientificName string `json:"scientificName"`
	Phylum         string `json:"phylum"`
	CanonicalName  string `json:"canonicalName"`
	Synonym        bool   `json:"synonym"`
	SpeciesKey     int64  `json:"speciesKey"`
}

// SpeciesRow is one line of the species list CSV
type SpeciesRow struct {
	TaxonID        string
	Species        string
	Genus          string
	Class          string
	Rank           string
	Parent         string
	Authorship     string
	Order          string
	PublishedIn    string
	Kingdom        string
	Family         string
	ScientificName string
	Phylum         string
	ParentOfTaxon  string
	Name           string
	CanonicalName  string
	Source         string
	Synonym        bool
	SpeciesKey     string
}

// Values returns the row in SpeciesListHeader order
func (r SpeciesRow) Values() []string {
	return []string{
		r.TaxonID, r.Species, r.Genus, r.Class, r.Rank, r.Parent, r.Authorship, r.Order,
		r.PublishedIn, r.Kingdom, r.Family, r.ScientificName, r.Phylum, r.ParentOfTaxon,
		r.Name, r.CanonicalName, r.Source, FormatFlag(r.Synonym), r.SpeciesKey,
	}
}

// ToSpeciesRow converts a usage into a species list row.
// Only species and subspecies are kept; the second return is false otherwise.
func (u NameUsage) ToSpeciesRow() (SpeciesRow, bool) {
	if u.Rank != RankSpecies && u.Rank != RankSubspecies {
		return SpeciesRow{}, false
	}

	row := SpeciesRow{
		TaxonID:        stripNamespace(u.TaxonID),
		Species:        u.Species,
		Genus:          u.Genus,
		Class:          u.Class,
		Rank:           u.Rank,
		Parent:         u.Parent,
		Authorship:     u.Authorship,
		Order:          u.Order,
		PublishedIn:    u.PublishedIn,
		Kingdom:        u.Kingdom,
		Family:         u.Family,
		ScientificName: u.ScientificName,
		Phylum:         u.Phylum,
		CanonicalName:  u.CanonicalName,
		Source:         SourceGBIF,
		Synonym:        u.Synonym,
	}
	if row.TaxonID == "" && u.Key != 0 {
		row.TaxonID = strconv.FormatInt(u.Key, 10)
	}
	if u.SpeciesKey != 0 {
		row.SpeciesKey = strconv.FormatInt(u.SpeciesKey, 10)
	}

	words := strings.Fields(u.CanonicalName)
	if len(words) > 0 {
		row.Name = words[len(words)-1]
	}
	switch {
	case u.Rank == RankSubspecies && len(words) >= 2:
		row.ParentOfTaxon = words[0] + " " + words[1]
	case u.Rank == RankSpecies && len(words) >= 1:
		row.ParentOfTaxon = words[0]
	}

	return row, true
}

// FormatFlag writes a boolean the way the species list stores it
func FormatFlag(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ParseFlag reads a species list boolean. Accepts True/False in any case and 1/0.
func ParseFlag(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// stripNamespace turns "gbif:2435099" into "2435099"
func stripNamespace(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}
