package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/siteinv"
)

// mimeTypes maps lowercase path extensions to MIME types. The table is
// static so classification does not depend on the host's mime database.
var mimeTypes = map[string]string{
	// Office and print formats
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".dot":  "application/msword",
	".rtf":  "application/rtf",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",

	// Spreadsheets
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xlsm": "application/vnd.ms-excel.sheet.macroenabled.12",

	// Images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".ico":  "image/vnd.microsoft.icon",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".avif": "image/avif",
	".heic": "image/heic",

	// Video
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".wmv":  "video/x-ms-wmv",

	// Audio
	".mp3":  "audio/mpeg",
	".wav":  "audio/x-wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".weba": "audio/webm",

	// Text
	".txt":  "text/plain",
	".text": "text/plain",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".mjs":  "text/javascript",
	".xml":  "text/xml",
	".md":   "text/markdown",
	".ics":  "text/calendar",
	".vtt":  "text/vtt",

	// Applications
	".json":  "application/json",
	".xhtml": "application/xhtml+xml",
	".rss":   "application/rss+xml",
	".atom":  "application/atom+xml",
	".wasm":  "application/wasm",
	".zip":   "application/zip",
	".gz":    "application/gzip",
	".tgz":   "application/gzip",
	".tar":   "application/x-tar",
	".bz2":   "application/x-bzip2",
	".7z":    "application/x-7z-compressed",
	".rar":   "application/vnd.rar",
	".exe":   "application/x-msdownload",
	".msi":   "application/x-msdownload",
	".dmg":   "application/x-apple-diskimage",
	".apk":   "application/vnd.android.package-archive",
	".jar":   "application/java-archive",
	".swf":   "application/x-shockwave-flash",

	// Fonts: known MIME types that match no category rule.
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
}

// vendorNamespaces are MIME subtype prefixes removed before rule matching.
// The OOXML prefix contains "document", which would otherwise send every
// Office format (spreadsheets included) to Documents.
var vendorNamespaces = []string{
	"vnd.openxmlformats-officedocument.",
}

// categoryRules are tested in order; the first rule with a keyword contained
// in the MIME type wins.
var categoryRules = []struct {
	category siteinv.Category
	keywords []string
}{
	{siteinv.CategoryImages, []string{"image"}},
	{siteinv.CategoryPDFs, []string{"pdf"}},
	{siteinv.CategoryDocuments, []string{"word", "document"}},
	{siteinv.CategorySpreadsheets, []string{"excel", "spreadsheet"}},
	{siteinv.CategoryVideos, []string{"video"}},
	{siteinv.CategoryAudio, []string{"audio"}},
	{siteinv.CategoryTextFiles, []string{"text"}},
	{siteinv.CategoryApplications, []string{"application"}},
}

// Extension returns the lowercase filename extension of a URL path,
// including its leading period. Leading dots of the final segment do not
// start an extension (".htaccess" has none), and a path ending in "/" has
// no final segment.
func Extension(urlPath string) string {
	if urlPath == "" || strings.HasSuffix(urlPath, "/") {
		return ""
	}
	base := path.Base(strings.ToLower(urlPath))
	return path.Ext(strings.TrimLeft(base, "."))
}

// MIMEType returns the MIME type for a lowercase extension such as ".pdf".
func MIMEType(ext string) (string, bool) {
	t, ok := mimeTypes[ext]
	return t, ok
}

// Classify maps a URL to its category label using the path extension.
// URLs without an extension are Webpages; unknown extensions (and known
// types no rule matches) get an "Other (<ext>)" label.
//
// Classify is a pure function of its input.
func Classify(rawURL string) siteinv.Category {
	ext := Extension(urlPath(rawURL))
	if ext == "" {
		return siteinv.CategoryWebpages
	}
	mimeType, ok := MIMEType(ext)
	if !ok {
		return siteinv.OtherCategory(ext)
	}
	if c, ok := categoryForMIME(mimeType); ok {
		return c
	}
	return siteinv.OtherCategory(ext)
}

func categoryForMIME(mimeType string) (siteinv.Category, bool) {
	t := strings.ToLower(mimeType)
	if typ, sub, ok := strings.Cut(t, "/"); ok {
		for _, ns := range vendorNamespaces {
			sub = strings.TrimPrefix(sub, ns)
		}
		t = typ + "/" + sub
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// urlPath returns the path component of rawURL, falling back to the raw
// string minus query and fragment when it does not parse.
func urlPath(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Path
	}
	s := rawURL
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
