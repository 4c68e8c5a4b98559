package siteinv

import "strings"

// Category is the classification bucket assigned to a fetched resource.
type Category string

// Fixed category labels. URLs without a path extension are Webpages.
const (
	CategoryWebpages     Category = "Webpages"
	CategoryImages       Category = "Images"
	CategoryPDFs         Category = "PDFs"
	CategoryDocuments    Category = "Documents"
	CategorySpreadsheets Category = "Spreadsheets"
	CategoryVideos       Category = "Videos"
	CategoryAudio        Category = "Audio"
	CategoryTextFiles    Category = "Text Files"
	CategoryApplications Category = "Applications"
)

// OtherCategory returns the dynamic label used for extensions that have no
// known category, e.g. "Other (.php)". The extension keeps its leading period.
func OtherCategory(ext string) Category {
	return Category("Other (" + ext + ")")
}

// IsOther reports whether c is a dynamic "Other (<ext>)" label.
func (c Category) IsOther() bool {
	return strings.HasPrefix(string(c), "Other (") && strings.HasSuffix(string(c), ")")
}
