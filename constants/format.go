package constants

import (
	"path/filepath"
	"strings"
)

// TemplateFormat is the declared source shape of an extraction template.
type TemplateFormat string

const (
	// FormatDocument is a rich-text (Word) template.
	FormatDocument TemplateFormat = "document"
	// FormatTabular is a spreadsheet template.
	FormatTabular TemplateFormat = "tabular"
	// FormatUnknown is anything else.
	FormatUnknown TemplateFormat = "unknown"
)

// SourceColumn is the reserved identifier column of the output table.
// Each row records the source article it was extracted from, which is also
// how resumed runs skip already-processed files.
const SourceColumn = "Source File"

// ArticleExtensions holds the file extensions accepted as source articles.
var ArticleExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// DetectTemplateFormat maps a template path to its format based solely on
// the file extension. Pure function, no I/O.
func DetectTemplateFormat(path string) TemplateFormat {
	switch NormalizeExt(filepath.Ext(path)) {
	case "docx":
		return FormatDocument
	case "xlsx", "xls":
		return FormatTabular
	default:
		return FormatUnknown
	}
}

// IsArticle reports whether path looks like a processable source article.
func IsArticle(path string) bool {
	_, ok := ArticleExtensions[NormalizeExt(filepath.Ext(path))]
	return ok
}
