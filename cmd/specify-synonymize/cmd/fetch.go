package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"specifytools/internal/adapters/filesystem"
	"specifytools/internal/adapters/gbif"
	"specifytools/internal/application"
	"specifytools/internal/application/commands"
)

var (
	occurrencePath string
	outputPath     string
	gbifBaseURL    string
	gbifRate       float64
	gbifPageSize   int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Build a species list from a GBIF occurrence export",
	Long: `Build a species list CSV from a GBIF occurrence export.

Every distinct species key in the export is looked up in the GBIF species API
together with its synonyms. Only species and subspecies are kept. The output is
the species list that the synonymize command reads.

Examples:
  specify-synonymize fetch -i occurrence.txt -o species.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.ValidateRequired("occurrences", occurrencePath); err != nil {
			return err
		}
		if err := application.ValidateRequired("outputPath", outputPath); err != nil {
			return err
		}
		if err := application.ValidateReadableFile(occurrencePath); err != nil {
			return err
		}

		writer, err := filesystem.CreateSpeciesList(outputPath)
		if err != nil {
			return err
		}
		client := gbif.NewClient(
			gbif.WithBaseURL(gbifBaseURL),
			gbif.WithRateLimit(gbifRate),
			gbif.WithPageSize(gbifPageSize),
		)

		result, err := commands.NewFetchSpeciesCommand(filesystem.NewOccurrences(occurrencePath), client, writer).
			Execute(commandContext())
		if err != nil {
			writer.Close()
			return err
		}

		printer.Success(result.Message)
		if len(result.Skipped) > 0 {
			printer.Warn("Species keys not found in GBIF: " + strings.Join(result.Skipped, ", "))
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&occurrencePath, "input", "i", "occurrence.txt", "tab separated occurrence export with species and specieskey columns")
	fetchCmd.Flags().StringVarP(&outputPath, "output", "o", "species.csv", "species list CSV to write")
	fetchCmd.Flags().StringVar(&gbifBaseURL, "base-url", gbif.DefaultBaseURL, "GBIF API root")
	fetchCmd.Flags().Float64Var(&gbifRate, "rate", 10, "maximum GBIF requests per second (0 disables the limit)")
	fetchCmd.Flags().IntVar(&gbifPageSize, "page-size", gbif.DefaultPageSize, "synonyms fetched per request")
	rootCmd.AddCommand(fetchCmd)
}
