package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"specifytools/internal/application"
	"specifytools/internal/domain"
	"specifytools/internal/logging"
	"specifytools/internal/ports"
)

// ReportResult contains where the two report files were written
type ReportResult struct {
	SynonymLocation  string
	AcceptedLocation string
	SynonymRows      int
	AcceptedRows     int
	Message          string
}

// ReportSynonymsCommand writes the proposed synonymy as two CSV reports.
// The database is never touched.
type ReportSynonymsCommand struct {
	sink   ports.ReportSink
	Result domain.MatchResult
}

// NewReportSynonymsCommand creates a new ReportSynonymsCommand
func NewReportSynonymsCommand(sink ports.ReportSink, result domain.MatchResult) *ReportSynonymsCommand {
	return &ReportSynonymsCommand{
		sink:   sink,
		Result: result,
	}
}

// Validate checks the command has somewhere to write
func (c *ReportSynonymsCommand) Validate() error {
	if c.sink == nil {
		return &application.ValidationError{Field: "reportDir", Message: "report destination is required"}
	}
	return nil
}

// Execute writes the synonym report, then the accepted report
func (c *ReportSynonymsCommand) Execute(ctx context.Context) (*ReportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	synonyms, err := EncodeSynonymReport(c.Result.Synonyms)
	if err != nil {
		return nil, err
	}
	synLoc, err := c.sink.Write(ctx, application.SynonymReportName, bytes.NewReader(synonyms))
	if err != nil {
		return nil, fmt.Errorf("failed to write synonym report: %w", err)
	}

	accepted, err := EncodeAcceptedReport(c.Result.Accepted)
	if err != nil {
		return nil, err
	}
	accLoc, err := c.sink.Write(ctx, application.AcceptedReportName, bytes.NewReader(accepted))
	if err != nil {
		return nil, fmt.Errorf("failed to write accepted report: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("synonym_report", synLoc).
		Str("accepted_report", accLoc).
		Msg("reports written")

	return &ReportResult{
		SynonymLocation:  synLoc,
		AcceptedLocation: accLoc,
		SynonymRows:      len(c.Result.Synonyms),
		AcceptedRows:     len(c.Result.Accepted),
		Message: fmt.Sprintf("Wrote %d synonyms to %s and %d accepted names to %s",
			len(c.Result.Synonyms), synLoc, len(c.Result.Accepted), accLoc),
	}, nil
}

// EncodeSynonymReport renders synonym intents with the fixed synonym report header
func EncodeSynonymReport(intents []domain.SynonymIntent) ([]byte, error) {
	rows := make([][]string, 0, len(intents))
	for _, s := range intents {
		rows = append(rows, []string{
			s.SynonymName,
			s.SynonymGUID,
			formatID(s.SynonymInternalID),
			s.AcceptedName,
			s.AcceptedGUID,
			formatID(s.AcceptedInternalID),
			formatID(s.SynonymHierarchyID),
			formatID(s.AcceptedHierarchyID),
		})
	}
	return encodeCSV(application.SynonymReportHeader, rows)
}

// EncodeAcceptedReport renders accepted intents with the fixed accepted report header
func EncodeAcceptedReport(intents []domain.AcceptedIntent) ([]byte, error) {
	rows := make([][]string, 0, len(intents))
	for _, a := range intents {
		rows = append(rows, []string{a.Name, a.GUID, formatID(a.InternalID)})
	}
	return encodeCSV(application.AcceptedReportHeader, rows)
}

func encodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
