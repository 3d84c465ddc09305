package application

import "time"

// Report file names written by report mode
const (
	SynonymReportName  = "specify_synonyms_report.csv"
	AcceptedReportName = "specify_accepted_report.csv"
)

// Fixed report headers
var (
	SynonymReportHeader = []string{
		"synonym", "synonym_guid", "synonym_specify_id", "accepted_name", "accepted_guid",
		"accepted_specify_id", "treedef", "species_treedef",
	}
	AcceptedReportHeader = []string{"accepted_name", "accepted_guid", "accepted_specify_id"}
)

// RunStats holds counters from one synonymize run
type RunStats struct {
	SourceRecords    int
	SynonymRecords   int
	AcceptedRecords  int
	AuthorityRecords int
	Links            int
	AcceptedIntents  int
	SynonymIntents   int
	AcceptedApplied  int
	SynonymsApplied  int
	Duration         time.Duration
}
