package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/handiism/archive-downloader/internal/model"
	"github.com/handiism/archive-downloader/internal/urlcodec"
)

// PageFetcher fetches the HTML of a page.
//
// *http.Client from internal/http satisfies it.
type PageFetcher interface {
	GetString(ctx context.Context, url string) (string, error)
}

// Discoverer extracts file links from a single archive page.
//
// Only anchor elements are considered. An anchor matches when its href
// ends with the configured extension; the comparison is case-sensitive and
// made on the href as written in the page (after HTML entity decoding).
//
// Example usage:
//
//	disco := NewDiscoverer(client, ".mp4")
//
//	links, err := disco.FindLinks(ctx, "https://archive.example/videos")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, link := range links {
//	    fmt.Println(link) // absolute, percent-encoded
//	}
type Discoverer struct {
	fetcher   PageFetcher
	extension string
}

// NewDiscoverer creates a Discoverer that keeps hrefs ending in extension.
func NewDiscoverer(fetcher PageFetcher, extension string) *Discoverer {
	return &Discoverer{
		fetcher:   fetcher,
		extension: extension,
	}
}

// FindLinks fetches baseURL once and returns the matching links in document
// order. Duplicates are preserved.
//
// A failed fetch is returned as an error; callers report it and carry on as
// if the page had no links. An empty result is not an error.
func (d *Discoverer) FindLinks(ctx context.Context, baseURL string) ([]model.VideoLink, error) {
	page, err := d.fetcher.GetString(ctx, baseURL)
	if err != nil {
		return nil, err
	}
	return d.ExtractLinks(baseURL, page)
}

// ExtractLinks scans page for matching anchors and resolves each href
// against baseURL.
func (d *Discoverer) ExtractLinks(baseURL, page string) ([]model.VideoLink, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}

	hrefs, err := anchorHrefs(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("could not parse page: %w", err)
	}

	var links []model.VideoLink
	for _, href := range hrefs {
		if !strings.HasSuffix(href, d.extension) {
			continue
		}
		link, err := resolve(base, href)
		if err != nil {
			continue
		}
		links = append(links, link)
	}
	return links, nil
}

// Resolve normalises href and makes it absolute.
//
// The href is decoded, re-encoded and then resolved against baseURL + "/".
// Decoding first means an href that is already percent-encoded ends up
// encoded exactly once:
//
//	Resolve("http://x.test/videos", "clip one.mp4")   // "http://x.test/videos/clip%20one.mp4"
//	Resolve("http://x.test/videos", "clip%20one.mp4") // "http://x.test/videos/clip%20one.mp4"
//
// Characters such as ':' are encoded too, so an absolute href resolves as
// a path below baseURL.
func Resolve(baseURL, href string) (model.VideoLink, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return "", err
	}
	return resolve(base, href)
}

func parseBase(baseURL string) (*url.URL, error) {
	base, err := url.Parse(baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return base, nil
}

func resolve(base *url.URL, href string) (model.VideoLink, error) {
	ref, err := url.Parse(urlcodec.Quote(urlcodec.Unquote(href)))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// anchorHrefs returns the href of every <a> element in document order.
// Anchors without an href are skipped.
func anchorHrefs(r io.Reader) ([]string, error) {
	var hrefs []string

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return hrefs, nil
			}
			return hrefs, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.A {
				continue
			}
			for _, attr := range tok.Attr {
				if attr.Namespace == "" && attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
					break
				}
			}
		}
	}
}
