// Package social maps raw hyperlinks to known platform identities. The
// platform taxonomy is an explicit ordered configuration value rather than a
// package-level table, so alternative taxonomies can be substituted in tests
// and configuration.
package social

import (
	"net/url"
	"strings"

	"github.com/agentstation/orgmap/pkg/companies"
)

// Entry binds a platform key to the root domains that identify it.
type Entry struct {
	Platform companies.Platform `json:"platform" yaml:"platform"`
	Domains  []string           `json:"domains" yaml:"domains"`
}

// Taxonomy is an ordered list of platform entries; the first entry whose
// domains match a link's hostname wins.
type Taxonomy []Entry

// DefaultTaxonomy returns the standard platform taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{Platform: companies.PlatformLinkedIn, Domains: []string{"linkedin.com"}},
		{Platform: companies.PlatformX, Domains: []string{"x.com", "twitter.com"}},
		{Platform: companies.PlatformFacebook, Domains: []string{"facebook.com", "fb.com"}},
		{Platform: companies.PlatformInstagram, Domains: []string{"instagram.com"}},
		{Platform: companies.PlatformYouTube, Domains: []string{"youtube.com", "youtu.be"}},
		{Platform: companies.PlatformGitHub, Domains: []string{"github.com"}},
		{Platform: companies.PlatformTikTok, Domains: []string{"tiktok.com"}},
	}
}

// Classify parses the link's hostname and returns the platform it belongs
// to. A hostname matches a root domain when it equals it or is a sub-domain
// of it: the suffix match is on "."+domain, so "notfacebook.com" does not
// match "facebook.com". Links matching no configured domain yield ok=false and
// are discarded, not stored under a synthetic key.
func (t Taxonomy) Classify(rawURL string) (companies.Platform, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	for _, entry := range t {
		for _, domain := range entry.Domains {
			d := strings.ToLower(domain)
			if host == d || strings.HasSuffix(host, "."+d) {
				return entry.Platform, true
			}
		}
	}
	return "", false
}

// Collect classifies an ordered list of links and keeps the first link
// observed for each platform; later links for an already-resolved platform
// are ignored. The result is nil when nothing classified.
func (t Taxonomy) Collect(links []string) map[companies.Platform]string {
	var out map[companies.Platform]string
	for _, link := range links {
		platform, ok := t.Classify(link)
		if !ok {
			continue
		}
		if _, seen := out[platform]; seen {
			continue
		}
		if out == nil {
			out = make(map[companies.Platform]string)
		}
		out[platform] = link
	}
	return out
}
