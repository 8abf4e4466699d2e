package docs

import (
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/PuerkitoBio/goquery"

	"github.com/teranos/cmdstub/errors"
)

// VersionPlaceholder is substituted in the documentation base URL
const VersionPlaceholder = "{version}"

// IndexEntry is one command listed on the documentation index page
type IndexEntry struct {
	Command string
	URL     string
}

// URLBuilder turns page names into absolute documentation URLs
type URLBuilder struct {
	BaseURL string
	Version string
}

// PageURL returns the absolute URL of page, adding ".html" when missing.
// Absolute hrefs are returned unchanged.
func (b URLBuilder) PageURL(page string) string {
	if u, err := url.Parse(page); err == nil && u.IsAbs() {
		return page
	}
	if !strings.HasSuffix(strings.ToLower(page), ".html") {
		page += ".html"
	}
	base := strings.ReplaceAll(b.BaseURL, VersionPlaceholder, b.Version)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + page
}

// DocsVersion derives the documentation version from the host version:
// the major component, e.g. "2025" for "2025.3".
func DocsVersion(hostVersion string) (string, error) {
	v, err := semver.NewVersion(strings.TrimSpace(hostVersion))
	if err != nil {
		return "", errors.WithHint(
			errors.Wrapf(err, "cannot derive documentation version from %q", hostVersion),
			"set docs.version explicitly")
	}
	return strconv.FormatUint(v.Major(), 10), nil
}

// ParseIndex lists every linked command on the index page.
// Anchors without an href are ignored.
func ParseIndex(r io.Reader, urls URLBuilder) ([]IndexEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse index")
	}

	var entries []IndexEntry
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		command := strings.TrimSpace(a.Text())
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if command == "" || href == "" {
			return
		}
		entries = append(entries, IndexEntry{Command: command, URL: urls.PageURL(href)})
	})
	return entries, nil
}
