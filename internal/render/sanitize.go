package render

import (
	"path/filepath"
	"strings"
)

// maxSheetNameLen is the XLSX sheet name limit.
const maxSheetNameLen = 31

// artifactPrefix is the fixed prefix for generated workbook files.
const artifactPrefix = "financial_tables_"

// invalidSheetChars are the characters XLSX forbids in sheet names.
const invalidSheetChars = `[]:*?/\`

// SheetName makes a table name usable as an XLSX sheet name: forbidden
// characters become underscores and the result is cut to 31 characters.
func SheetName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalidSheetChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}

	out := b.String()
	if len(out) > maxSheetNameLen {
		out = out[:maxSheetNameLen]
	}
	// Sheet names cannot start or end with an apostrophe.
	out = strings.Trim(out, "'")
	if out == "" {
		return "Table"
	}
	return out
}

// ArtifactName derives the workbook filename from the uploaded filename:
// fixed prefix, sanitized basename without extension, .xlsx suffix. The
// name is deterministic, so identically named uploads share an artifact
// path; a non-empty id is prepended to keep names unique when configured.
func ArtifactName(filename, id string) string {
	base := sanitizeBasename(filename)
	if id != "" {
		return artifactPrefix + id + "_" + base + ".xlsx"
	}
	return artifactPrefix + base + ".xlsx"
}

// sanitizeBasename reduces an uploaded filename to a safe character set:
// path stripped, extension dropped, anything outside [A-Za-z0-9._-]
// replaced with an underscore.
func sanitizeBasename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "document"
	}
	return out
}
