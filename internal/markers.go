package internal

import (
	"regexp"
	"strconv"
	"strings"
)

// ImageRef names a page illustration referenced inline by an answer.
// MessageIndex ties resolved images back to a transcript position rather
// than to whatever happens to be on screen when the fetch completes.
type ImageRef struct {
	Filename     string
	Page         int
	MessageIndex int
}

// Answers reference page images with a function-form tag, e.g.
// 画像(guide.pdf, 3). The ASCII spelling image(...) is accepted too.
// Pages are 1-based.
var imageMarkerRe = regexp.MustCompile(`(?:画像|image)\(\s*([^(),]+?)\s*,\s*(\d+)\s*\)`)

// ExtractImageRefs returns the refs found in text, tagged with msgIndex.
// Tags with a page of zero are ignored.
func ExtractImageRefs(text string, msgIndex int) []ImageRef {
	matches := imageMarkerRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]ImageRef, 0, len(matches))
	for _, m := range matches {
		page, err := strconv.Atoi(m[2])
		if err != nil || page < 1 {
			continue
		}
		refs = append(refs, ImageRef{
			Filename:     strings.TrimSpace(m[1]),
			Page:         page,
			MessageIndex: msgIndex,
		})
	}
	return refs
}

// StripImageMarkers removes marker tags from display text.
func StripImageMarkers(text string) string {
	return strings.TrimSpace(imageMarkerRe.ReplaceAllString(text, ""))
}
