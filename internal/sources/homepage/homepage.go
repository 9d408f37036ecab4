// Package homepage collects the outbound links of an organization's own
// website for social-profile classification. Document order is preserved,
// with rel="me" identity links hoisted to the front since they are the
// site's own claim about its profiles.
package homepage

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/orgmap/internal/transport"
	"github.com/agentstation/orgmap/pkg/errors"
)

const sourceName = "homepage"

// Client fetches and scrapes homepages.
type Client struct {
	transport *transport.Client
}

// New creates a homepage client sharing the given transport.
func New(t *transport.Client) *Client {
	if t == nil {
		t = transport.New()
	}
	return &Client{transport: t}
}

// Links returns the page's absolute outbound links in document order,
// rel="me" links first. Relative links are resolved against the page URL;
// non-http(s) schemes are dropped.
func (c *Client) Links(ctx context.Context, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.NewSourceError(sourceName, "invalid page url", err)
	}
	if base.Scheme == "" {
		base.Scheme = "https"
		pageURL = base.String()
	}

	doc, err := c.transport.GetHTML(ctx, sourceName, pageURL)
	if err != nil {
		return nil, err
	}

	var identity, rest []string
	seen := make(map[string]bool)
	doc.Find("a[href], link[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		abs := absolutize(base, href)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		if rel, _ := sel.Attr("rel"); relContains(rel, "me") {
			identity = append(identity, abs)
			return
		}
		if goquery.NodeName(sel) == "a" {
			rest = append(rest, abs)
		}
	})

	return append(identity, rest...), nil
}

func absolutize(base *url.URL, href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

func relContains(rel, token string) bool {
	for _, t := range strings.Fields(rel) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
