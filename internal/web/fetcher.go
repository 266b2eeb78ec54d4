package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/leonardcser/xai-web-search/internal/cache"
)

const (
	RequestTimeout  = 20 * time.Second
	MaxResponseSize = 1 * 1024 * 1024 // 1MB
	maxLinks        = 50
)

var (
	ErrInvalidURL      = errors.New("url must start with http:// or https://")
	ErrEmptyBody       = errors.New("empty response body")
	ErrUnsupportedType = errors.New("unsupported content type: binary files like images or PDFs are not supported")
)

// Page is the readable form of a fetched document.
type Page struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Text        string   `json:"text"`
	Links       []string `json:"links"`
}

// Fetcher downloads pages cited by search answers and converts them to
// markdown. Results are cached for ttl.
type Fetcher struct {
	base  *colly.Collector
	cache cache.KV
	ttl   time.Duration
}

func NewFetcher(kv cache.KV, ttl time.Duration) *Fetcher {
	if kv == nil {
		kv = cache.Discard{}
	}
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.Async(false),
		colly.MaxBodySize(4*MaxResponseSize),
	)
	c.SetRequestTimeout(RequestTimeout)
	return &Fetcher{base: c, cache: kv, ttl: ttl}
}

func (f *Fetcher) cacheKey(rawURL string) string { return "web_fetch|" + rawURL }

// Fetch returns the page at rawURL, served from cache when fresh.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, ErrInvalidURL
	}
	if v, err := f.cache.Get(f.cacheKey(rawURL)); err == nil {
		var p Page
		if json.Unmarshal(v, &p) == nil {
			return &p, nil
		}
	}

	body, finalURL, contentType, err := f.download(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page, err := parsePage(body, finalURL, contentType)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(page); err == nil {
		_ = f.cache.Put(f.cacheKey(rawURL), b, f.ttl)
	}
	return page, nil
}

// download visits rawURL on a clone of the base collector so that callbacks
// never leak between concurrent fetches.
func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, string, string, error) {
	c := f.base.Clone()
	c.Context = ctx
	c.SetRequestTimeout(RequestTimeout)

	var (
		body        []byte
		finalURL    = rawURL
		contentType string
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", NextUserAgent())
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	c.OnResponse(func(r *colly.Response) {
		finalURL = r.Request.URL.String()
		body = append([]byte(nil), r.Body...)
		contentType = r.Headers.Get("Content-Type")
	})

	if err := c.Visit(rawURL); err != nil {
		return nil, "", "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", "", err
	}
	if len(body) == 0 {
		return nil, "", "", ErrEmptyBody
	}
	return body, finalURL, contentType, nil
}

func parsePage(body []byte, finalURL, contentType string) (*Page, error) {
	if len(body) > MaxResponseSize {
		body = append(body[:MaxResponseSize:MaxResponseSize], []byte("... [response trimmed due to size]")...)
	}

	ct := strings.ToLower(contentType)
	if !strings.HasPrefix(ct, "text/") {
		return nil, ErrUnsupportedType
	}
	if !strings.Contains(ct, "text/html") {
		return &Page{URL: finalURL, Text: string(body)}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	doc.Find("script, style, noscript, iframe, object, embed, img, video, picture, svg, canvas, audio, source, track, map, area, form, label, input, button, select, textarea, progress, ins, applet").Remove()

	page := &Page{
		URL:         finalURL,
		Title:       strings.TrimSpace(doc.Find("head > title").First().Text()),
		Description: strings.TrimSpace(doc.Find("meta[name=description]").AttrOr("content", "")),
		Links:       collectLinks(doc, finalURL),
	}

	plain := strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	doc.Find("a").Remove()
	doc.Find("header, footer, aside, nav").Remove()

	html, err := doc.Html()
	if err != nil {
		return nil, err
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil || strings.TrimSpace(markdown) == "" {
		page.Text = plain
	} else {
		page.Text = strings.TrimSpace(markdown)
	}
	return page, nil
}

// collectLinks returns up to maxLinks absolute, fragment-free http(s) links in
// sorted order.
func collectLinks(doc *goquery.Document, pageURL string) []string {
	base, _ := url.Parse(pageURL)
	set := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "javascript:") {
			return
		}
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		if !u.IsAbs() && base != nil {
			u = base.ResolveReference(u)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		u.Fragment = ""
		set[u.String()] = struct{}{}
	})

	links := make([]string, 0, len(set))
	for l := range set {
		links = append(links, l)
	}
	sort.Strings(links)
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}
