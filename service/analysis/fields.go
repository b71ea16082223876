package analysis

import (
	"regexp"
	"strings"
)

// The detail crop is free-form OCR output; both fields are best effort.
// "Hight" is a misspelling that appears on real inspection sheets, so the
// pole name pattern accepts it alongside "Height".
var (
	poleNameRe = regexp.MustCompile(`(?i)Pole\s+Name\s+(.*?)\s+Pole\s+He?ight`)
	remarkRe   = regexp.MustCompile(`(?i)Remark\s+(.*)`)
)

// ExtractPoleName pulls the pole name out of the detail text, empty when
// the labels are not found.
func ExtractPoleName(detailText string) string {
	m := poleNameRe.FindStringSubmatch(detailText)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractRemark returns everything after the "Remark" label, trimmed.
func ExtractRemark(detailText string) string {
	m := remarkRe.FindStringSubmatch(detailText)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
