// Package refs finds the URLs in normalized text and classifies them as
// images or links.
package refs

import "regexp"

// Kind tells how a URL is rendered.
type Kind int

const (
	Link Kind = iota
	Image
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	default:
		return "link"
	}
}

// Reference is a URL together with its kind.
type Reference struct {
	URL  string
	Kind Kind
}

// Refs holds the URLs of one text, in order of first occurrence with
// duplicates preserved. A URL is never in both lists.
type Refs struct {
	Images []string
	Links  []string
}

var (
	// imageURLRegex matches URLs ending in a known image extension. Greedy, so
	// the last extension in the token wins.
	imageURLRegex = regexp.MustCompile(`(?i)https?://[^\s]+\.(?:png|jpg|jpeg|gif|webp|svg)`)

	// urlRegex matches any http(s) URL up to the next whitespace. Trailing
	// punctuation is kept.
	urlRegex = regexp.MustCompile(`https?://[^\s]+`)

	// imageExtRegex is imageURLRegex anchored to the whole string.
	imageExtRegex = regexp.MustCompile(`(?i)^https?://[^\s]+\.(?:png|jpg|jpeg|gif|webp|svg)$`)
)

// Extract scans text for image URLs first, then for any URL not already
// found as an image.
func Extract(text string) Refs {
	images := imageURLRegex.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(images))
	for _, u := range images {
		seen[u] = struct{}{}
	}

	var links []string
	for _, u := range urlRegex.FindAllString(text, -1) {
		if _, ok := seen[u]; ok {
			continue
		}
		links = append(links, u)
	}

	return Refs{Images: images, Links: links}
}

// Classify reports whether url is an image URL.
func Classify(url string) Kind {
	if imageExtRegex.MatchString(url) {
		return Image
	}
	return Link
}

// FromURLs sorts already separated URLs, such as the inline cards of a stored
// document, into images and links.
func FromURLs(urls []string) Refs {
	var r Refs
	for _, u := range urls {
		if Classify(u) == Image {
			r.Images = append(r.Images, u)
		} else {
			r.Links = append(r.Links, u)
		}
	}
	return r
}

// References returns images then links as one list.
func (r Refs) References() []Reference {
	out := make([]Reference, 0, len(r.Images)+len(r.Links))
	for _, u := range r.Images {
		out = append(out, Reference{URL: u, Kind: Image})
	}
	for _, u := range r.Links {
		out = append(out, Reference{URL: u, Kind: Link})
	}
	return out
}

// Empty reports whether no URL was found.
func (r Refs) Empty() bool {
	return len(r.Images) == 0 && len(r.Links) == 0
}
