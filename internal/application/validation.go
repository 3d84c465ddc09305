package application

import (
	"fmt"
	"os"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "inputPath" -> "input path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"inputPath":   "input path",
		"outputPath":  "output path",
		"configPath":  "config path",
		"reportDir":   "report directory",
		"database":    "database name",
		"user":        "username",
		"host":        "host address",
		"speciesKey":  "species key",
		"occurrences": "occurrence file",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateReadableFile checks that path names an existing regular file.
// Returns an InputError otherwise.
func ValidateReadableFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InputError{Path: path, Reason: "cannot read file", Err: err}
	}
	if info.IsDir() {
		return &InputError{Path: path, Reason: "is a directory"}
	}
	return nil
}

// ValidateColumns checks that every required column is present in a header row.
// Returns an InputError naming the missing columns.
func ValidateColumns(path string, header []string, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &InputError{
			Path:   path,
			Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}
	return index, nil
}
