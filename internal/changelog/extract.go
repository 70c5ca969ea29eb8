package changelog

import (
	"errors"
	"regexp"
)

// headerPattern matches a single version header, e.g. `## [1.2.3] - 2022-06-15`.
// The version may carry a `v` or `V` prefix; everything else is literal.
var headerPattern = regexp.MustCompile(`## \[([vV]?\d+\.\d+\.\d+)\] - (\d{4}-\d{2}-\d{2})`)

// NoHeaderFoundError is returned when a changelog contains no version header.
type NoHeaderFoundError struct{}

func (e *NoHeaderFoundError) Error() string {
	return "no valid changelog headers found; is the changelog in a supported format?"
}

// IsNoHeaderFound returns true if the error is a NoHeaderFoundError.
func IsNoHeaderFound(err error) bool {
	var nh *NoHeaderFoundError
	return errors.As(err, &nh)
}

// Header is one version header located in a changelog.
type Header struct {
	// Offset is the byte index of the leading "##".
	Offset int
	// Line is the matched header text, e.g. "## [1.2.3] - 2022-06-15".
	Line string
	// Version is the version as written, including any v/V prefix.
	Version string
	// Date is the YYYY-MM-DD date as written.
	Date string
}

// Entry is the text belonging to one version, starting at its header.
type Entry struct {
	Header Header
	Text   string
}

// FindHeaders returns up to n headers in document order.
// A negative n returns every header.
func FindHeaders(text string, n int) []Header {
	matches := headerPattern.FindAllStringSubmatchIndex(text, n)
	headers := make([]Header, 0, len(matches))
	for _, m := range matches {
		headers = append(headers, Header{
			Offset:  m[0],
			Line:    text[m[0]:m[1]],
			Version: text[m[2]:m[3]],
			Date:    text[m[4]:m[5]],
		})
	}
	return headers
}

// ExtractLatest returns the first entry in document order.
// Changelogs list newest first, so no version comparison is done.
func ExtractLatest(text string) (*Entry, error) {
	// Only the first two boundaries matter.
	headers := FindHeaders(text, 2)

	switch len(headers) {
	case 0:
		return nil, &NoHeaderFoundError{}
	case 1:
		return &Entry{Header: headers[0], Text: text[headers[0].Offset:]}, nil
	default:
		return &Entry{Header: headers[0], Text: text[headers[0].Offset:headers[1].Offset]}, nil
	}
}

// ExtractLatestEntry returns the raw text of the latest changelog entry,
// from its header up to the next header or the end of text.
// The slice is returned verbatim with no trimming.
func ExtractLatestEntry(text string) (string, error) {
	entry, err := ExtractLatest(text)
	if err != nil {
		return "", err
	}
	return entry.Text, nil
}
