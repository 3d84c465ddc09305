package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"specifytools/internal/adapters/filesystem"
	"specifytools/internal/application/commands"
	"specifytools/internal/domain"
	"specifytools/internal/ports"
)

// StoreOpener opens the taxon store described by a config file.
// An empty path means the default config location.
type StoreOpener func(ctx context.Context, configPath string) (ports.TaxonStore, error)

const defaultListLimit = 50

// RegisterTools adds the read-only synonymy tools to the MCP server.
// None of them writes to the taxon table.
func RegisterTools(s *server.MCPServer, open StoreOpener) {
	s.AddTool(matchTool(), matchHandler(open))
	s.AddTool(reportTool(), reportHandler(open))
}

// --- match_synonyms ---

func matchTool() mcp.Tool {
	return mcp.NewTool("match_synonyms",
		mcp.WithDescription("Match a species list CSV against the Specify taxon table and list the accepted and synonym changes an apply run would make. Read-only."),
		mcp.WithString("input",
			mcp.Description("Path to the species list CSV (columns synonym, taxonID, speciesKey, canonicalName)"),
			mcp.Required(),
		),
		mcp.WithString("config",
			mcp.Description("Path to the database config JSON. Omit to use specify_config.json."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum intents listed per kind (default 50, 0 lists counts only)"),
		),
	)
}

func matchHandler(open StoreOpener) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := req.GetString("input", "")
		if input == "" {
			return toolError(fmt.Errorf("input is required"))
		}
		limit := req.GetInt("limit", defaultListLimit)

		store, err := open(ctx, req.GetString("config", ""))
		if err != nil {
			return toolError(err)
		}
		defer store.Close()

		outcome, err := commands.NewMatchSynonymsCommand(filesystem.NewSpeciesList(input), store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		st := outcome.Stats
		fmt.Fprintf(&sb, "species list: %d rows (%d synonyms, %d accepted)\n", st.SourceRecords, st.SynonymRecords, st.AcceptedRecords)
		fmt.Fprintf(&sb, "taxon table: %d rows\n", st.AuthorityRecords)
		fmt.Fprintf(&sb, "links: %d\n", st.Links)
		fmt.Fprintf(&sb, "accepted intents: %d\n", st.AcceptedIntents)
		fmt.Fprintf(&sb, "synonym intents: %d\n", st.SynonymIntents)

		if limit > 0 {
			writeAccepted(&sb, outcome.Result.Accepted, limit)
			writeSynonyms(&sb, outcome.Result.Synonyms, limit)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func writeAccepted(sb *strings.Builder, intents []domain.AcceptedIntent, limit int) {
	if len(intents) == 0 {
		return
	}
	sb.WriteString("\naccepted:\n")
	for i, a := range intents {
		if i == limit {
			fmt.Fprintf(sb, "  ... %d more\n", len(intents)-limit)
			break
		}
		fmt.Fprintf(sb, "  %d  %s  %s\n", a.InternalID, a.Name, a.GUID)
	}
}

func writeSynonyms(sb *strings.Builder, intents []domain.SynonymIntent, limit int) {
	if len(intents) == 0 {
		return
	}
	sb.WriteString("\nsynonyms:\n")
	for i, s := range intents {
		if i == limit {
			fmt.Fprintf(sb, "  ... %d more\n", len(intents)-limit)
			break
		}
		fmt.Fprintf(sb, "  %d %s -> %d %s (tree %d)\n",
			s.SynonymInternalID, s.SynonymName, s.AcceptedInternalID, s.AcceptedName, s.SynonymHierarchyID)
	}
}

// --- synonym_report ---

func reportTool() mcp.Tool {
	return mcp.NewTool("synonym_report",
		mcp.WithDescription("Write specify_synonyms_report.csv and specify_accepted_report.csv for a species list without changing the database."),
		mcp.WithString("input",
			mcp.Description("Path to the species list CSV"),
			mcp.Required(),
		),
		mcp.WithString("report_dir",
			mcp.Description("Directory the two reports are written to"),
			mcp.Required(),
		),
		mcp.WithString("config",
			mcp.Description("Path to the database config JSON. Omit to use specify_config.json."),
		),
	)
}

func reportHandler(open StoreOpener) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := req.GetString("input", "")
		dir := req.GetString("report_dir", "")
		if input == "" || dir == "" {
			return toolError(fmt.Errorf("input and report_dir are required"))
		}

		store, err := open(ctx, req.GetString("config", ""))
		if err != nil {
			return toolError(err)
		}
		defer store.Close()

		cmd := commands.NewSynonymizeCommand(
			filesystem.NewSpeciesList(input), store, filesystem.NewReportDir(dir), commands.ModeReport)
		res, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Report.Message), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
