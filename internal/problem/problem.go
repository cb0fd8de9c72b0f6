// Package problem identifies which LeetCode problem a page URL refers to.
package problem

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/vytor/lanki/internal/models"
)

// Kind classifies a page URL.
type Kind int

const (
	// KindNone means the URL does not have the expected shape. Callers keep their previous title.
	KindNone Kind = iota
	// KindListing is a problem list page: there is no current problem, and that is not an error.
	KindListing
	// KindProblem is a single problem page.
	KindProblem
)

func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindProblem:
		return "problem"
	default:
		return "none"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Page is what Current extracts from a URL.
type Page struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

var (
	listingPaths = map[string]bool{"/problems/": true, "/problemset/": true}
	problemRe    = regexp.MustCompile(`/problems/([\w-]+)/`)
)

// Current classifies a page URL and, for problem pages, derives a display title from the slug.
func Current(rawURL string) Page {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" && listingPaths[u.Path] && u.RawQuery == "" && u.Fragment == "" {
		return Page{Kind: KindListing}
	}
	m := problemRe.FindStringSubmatch(rawURL)
	if len(m) < 2 || m[1] == "" {
		return Page{Kind: KindNone}
	}
	return Page{Kind: KindProblem, Title: TitleFromSlug(m[1]), Slug: m[1]}
}

// TitleFromSlug turns "two-sum" into "Two Sum".
func TitleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// NormalizeURL strips everything after the problem slug, including query and fragment:
// "https://leetcode.com/problems/two-sum/submissions/1?tab=x" becomes
// "https://leetcode.com/problems/two-sum". URLs without a problems/<slug> path are returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	segments := pathSegments(u.Path)
	for i, seg := range segments {
		if strings.EqualFold(seg, "problems") && i < len(segments)-1 {
			return u.Scheme + "://" + strings.ToLower(u.Host) + "/problems/" + segments[i+1]
		}
	}
	return rawURL
}

// Slug returns the segment after "problems", or "" when there is none.
func Slug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := pathSegments(u.Path)
	for i, seg := range segments {
		if strings.EqualFold(seg, "problems") && i < len(segments)-1 {
			return segments[i+1]
		}
	}
	return ""
}

// Name is the display name for a stored problem URL, or models.UnknownProblemName.
func Name(rawURL string) string {
	slug := Slug(rawURL)
	if slug == "" {
		return models.UnknownProblemName
	}
	return TitleFromSlug(slug)
}

func pathSegments(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
