package domain

// SourceRecord is one row of the external species list
type SourceRecord struct {
	ExternalID    string // taxonID column
	CanonicalName string // canonicalName column
	IsSynonym     bool   // synonym column
	ParentKey     string // speciesKey column; the accepted record's ExternalID for synonyms
}

// SynonymLink pairs a synonym row with the accepted row it points at
type SynonymLink struct {
	SynonymName       string
	SynonymExternalID string
	AcceptedName      string
	AcceptedExtID     string
}

// AuthorityRecord is a taxon row already stored in the Specify database
type AuthorityRecord struct {
	InternalID  int64  // TaxonID
	DisplayName string // FullName
	GUID        string // GUID, empty when NULL
	HierarchyID int64  // TaxonTreeDefID
}

// AcceptedIntent marks an existing taxon as accepted
type AcceptedIntent struct {
	InternalID int64
	Name       string
	GUID       string
}

// SynonymIntent points a synonym taxon at its accepted taxon.
// Only built when both taxa live in the same tree.
type SynonymIntent struct {
	SynonymName         string
	SynonymGUID         string
	SynonymInternalID   int64
	AcceptedName        string
	AcceptedGUID        string
	AcceptedInternalID  int64
	SynonymHierarchyID  int64
	AcceptedHierarchyID int64
}

// Partition is the species list split by the synonym flag
type Partition struct {
	Synonyms []SourceRecord
	Accepted []SourceRecord
}

// Len returns the number of records in both subsets
func (p Partition) Len() int {
	return len(p.Synonyms) + len(p.Accepted)
}

// PartitionRecords splits records into synonyms and accepted names, keeping file order
func PartitionRecords(records []SourceRecord) Partition {
	var p Partition
	for _, r := range records {
		if r.IsSynonym {
			p.Synonyms = append(p.Synonyms, r)
		} else {
			p.Accepted = append(p.Accepted, r)
		}
	}
	return p
}

// MatchResult holds everything derived from one matching pass
type MatchResult struct {
	Links    []SynonymLink
	Accepted []AcceptedIntent
	Synonyms []SynonymIntent
}
