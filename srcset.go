package greywater

import (
	"strings"
	"unicode"
)

type imageCandidates []imageCandidate

// sanitizeSrcSet applies the URL sanitizer to every candidate of a srcset
// attribute value independently: one unsafe candidate does not invalidate
// its siblings. Descriptors pass through untouched.
// https://html.spec.whatwg.org/#parse-a-srcset-attribute
func (p *Policy) sanitizeSrcSet(attr string) (string, bool) {
	n := strings.Count(attr, ",")
	candidates := make(imageCandidates, 0, n+1)

	rewritten := false
	for _, value := range strings.Split(attr, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		c := parseImageCandidate(value)
		if url, changed := p.sanitizeURL(c.ImageURL); changed {
			c.ImageURL = url
			rewritten = true
		}
		candidates = append(candidates, c)
	}
	return candidates.String(), rewritten
}

type imageCandidate struct {
	ImageURL   string
	Descriptor string
}

func parseImageCandidate(input string) imageCandidate {
	i := strings.IndexFunc(input, unicode.IsSpace)
	if i < 0 {
		return imageCandidate{ImageURL: input}
	}
	return imageCandidate{
		ImageURL:   input[:i],
		Descriptor: strings.TrimSpace(input[i:]),
	}
}

func (c imageCandidates) String() string {
	htmlCandidates := make([]string, len(c))
	for i, imageCandidate := range c {
		htmlCandidates[i] = imageCandidate.String()
	}
	return strings.Join(htmlCandidates, ", ")
}

func (self *imageCandidate) String() string {
	if self.Descriptor == "" {
		return self.ImageURL
	}
	return self.ImageURL + " " + self.Descriptor
}
