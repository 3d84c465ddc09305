package domain

// AuthorityIndex resolves GUIDs to authority records.
// When a GUID appears more than once, the first record in load order is kept.
type AuthorityIndex struct {
	byGUID map[string]AuthorityRecord
}

// NewAuthorityIndex indexes records by GUID
func NewAuthorityIndex(records []AuthorityRecord) *AuthorityIndex {
	idx := &AuthorityIndex{byGUID: make(map[string]AuthorityRecord, len(records))}
	for _, r := range records {
		if r.GUID == "" {
			continue
		}
		if _, seen := idx.byGUID[r.GUID]; seen {
			continue
		}
		idx.byGUID[r.GUID] = r
	}
	return idx
}

// Lookup returns the authority record for a GUID
func (idx *AuthorityIndex) Lookup(guid string) (AuthorityRecord, bool) {
	if guid == "" {
		return AuthorityRecord{}, false
	}
	r, ok := idx.byGUID[guid]
	return r, ok
}

// Len returns the number of distinct GUIDs
func (idx *AuthorityIndex) Len() int {
	return len(idx.byGUID)
}

// LinkSynonyms joins every synonym to the first accepted record whose
// external ID equals the synonym's parent key. Synonyms without a parent
// in the accepted subset are dropped.
func LinkSynonyms(synonyms, accepted []SourceRecord) []SynonymLink {
	parents := make(map[string]SourceRecord, len(accepted))
	for _, a := range accepted {
		if a.ExternalID == "" {
			continue
		}
		if _, seen := parents[a.ExternalID]; !seen {
			parents[a.ExternalID] = a
		}
	}

	var links []SynonymLink
	for _, s := range synonyms {
		parent, ok := parents[s.ParentKey]
		if !ok || s.ParentKey == "" {
			continue
		}
		links = append(links, SynonymLink{
			SynonymName:       s.CanonicalName,
			SynonymExternalID: s.ExternalID,
			AcceptedName:      parent.CanonicalName,
			AcceptedExtID:     parent.ExternalID,
		})
	}
	return links
}

// MatchAccepted binds accepted source records to authority records by GUID.
// Records without an authority match produce no intent.
func MatchAccepted(accepted []SourceRecord, idx *AuthorityIndex) []AcceptedIntent {
	var intents []AcceptedIntent
	for _, a := range accepted {
		rec, ok := idx.Lookup(a.ExternalID)
		if !ok {
			continue
		}
		intents = append(intents, AcceptedIntent{
			InternalID: rec.InternalID,
			Name:       a.CanonicalName,
			GUID:       a.ExternalID,
		})
	}
	return intents
}

// MatchSynonyms binds links to authority records on both sides.
// A link becomes an intent only when both sides resolve and share a tree.
func MatchSynonyms(links []SynonymLink, idx *AuthorityIndex) []SynonymIntent {
	var intents []SynonymIntent
	for _, l := range links {
		syn, ok := idx.Lookup(l.SynonymExternalID)
		if !ok {
			continue
		}
		acc, ok := idx.Lookup(l.AcceptedExtID)
		if !ok {
			continue
		}
		if syn.HierarchyID != acc.HierarchyID {
			continue
		}
		intents = append(intents, SynonymIntent{
			SynonymName:         l.SynonymName,
			SynonymGUID:         l.SynonymExternalID,
			SynonymInternalID:   syn.InternalID,
			AcceptedName:        l.AcceptedName,
			AcceptedGUID:        l.AcceptedExtID,
			AcceptedInternalID:  acc.InternalID,
			SynonymHierarchyID:  syn.HierarchyID,
			AcceptedHierarchyID: acc.HierarchyID,
		})
	}
	return intents
}

// Match runs the full matching pass over a partitioned species list
func Match(p Partition, authority []AuthorityRecord) MatchResult {
	idx := NewAuthorityIndex(authority)
	links := LinkSynonyms(p.Synonyms, p.Accepted)
	return MatchResult{
		Links:    links,
		Accepted: MatchAccepted(p.Accepted, idx),
		Synonyms: MatchSynonyms(links, idx),
	}
}
