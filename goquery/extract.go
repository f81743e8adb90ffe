// Package goquery implements link discovery and fragment location on Spotrac
// pages using goquery CSS selectors.
package goquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/capdata"
)

// Ensure LinkDiscoverer implements capdata.LinkDiscoverer at compile time.
var _ capdata.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer selects team cap page links from the directory page.
type LinkDiscoverer struct {
	base  *url.URL
	rules capdata.LinkRules
}

// NewLinkDiscoverer returns a LinkDiscoverer that resolves relative links
// against rootURL and keeps those matching rules.
func NewLinkDiscoverer(rootURL string, rules capdata.LinkRules) (*LinkDiscoverer, error) {
	base, err := url.Parse(rootURL)
	if err != nil {
		return nil, capdata.Errorf(capdata.EINVALID, "invalid root URL: %v", err)
	}
	return &LinkDiscoverer{base: base, rules: rules}, nil
}

// Discover returns the distinct team locators linked from html, sorted.
func (d *LinkDiscoverer) Discover(html string) ([]capdata.TeamLocator, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, capdata.Errorf(capdata.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(d.base, href)
		if resolved == "" || !d.isTeamPage(resolved) {
			return
		}
		seen[resolved] = true
	})

	if len(seen) == 0 {
		return nil, capdata.Errorf(capdata.ENOLINKS, "no team links found on %s", d.base)
	}

	teams := make([]capdata.TeamLocator, 0, len(seen))
	for u := range seen {
		teams = append(teams, capdata.TeamLocator(u))
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })
	return teams, nil
}

func (d *LinkDiscoverer) isTeamPage(u string) bool {
	return strings.HasSuffix(u, d.rules.TeamSuffix) &&
		strings.Contains(u, d.rules.LeagueSegment) &&
		u != d.rules.AggregateURL
}

// resolveURL resolves a relative URL against a base URL.
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
