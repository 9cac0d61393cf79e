// Package markup extracts text, links and metadata from HTML documents.
package markup

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ErrEmptySelector is returned by Select when no selector is given.
var ErrEmptySelector = errors.New("selector is empty")

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// StripTags returns the text content of an HTML document with script and
// style elements removed.
func StripTags(input string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return html.UnescapeString(tagPattern.ReplaceAllString(input, ""))
	}
	doc.Find("script, style, noscript, template").Remove()
	return doc.Text()
}

// Link is an anchor with a non-empty href.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Links lists every a[href] in document order with whitespace in the anchor
// text collapsed.
func Links(input string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	var out []Link
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := spacePattern.ReplaceAllString(strings.TrimSpace(s.Text()), " ")
		out = append(out, Link{Text: text, Href: href})
	})
	return out, nil
}

// FormatLinks renders links one per line using a template with {text} and
// {href} placeholders. An empty template prints text and href on
// separate lines.
func FormatLinks(links []Link, template string) string {
	var b strings.Builder
	for _, l := range links {
		if template != "" {
			line := strings.ReplaceAll(template, "{text}", l.Text)
			b.WriteString(strings.ReplaceAll(line, "{href}", l.Href))
			b.WriteString("\n")
			continue
		}
		b.WriteString(l.Text + "\n" + l.Href + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Select runs a CSS selector and renders every match with each output in
// turn. Outputs are "text", "inner", "outer" and "attr:<name>"; none means
// "text".
func Select(input, selector string, outputs []string) ([]string, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, ErrEmptySelector
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	if len(outputs) == 0 {
		outputs = []string{"text"}
	}

	var out []string
	var selErr error
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		for _, o := range outputs {
			o = strings.TrimSpace(o)
			switch {
			case o == "outer":
				h, err := goquery.OuterHtml(s)
				if err != nil {
					selErr = err
					return false
				}
				out = append(out, h)
			case o == "inner":
				h, err := s.Html()
				if err != nil {
					selErr = err
					return false
				}
				out = append(out, h)
			case o == "text" || o == "":
				out = append(out, s.Text())
			case strings.HasPrefix(o, "attr:"):
				if v, ok := s.Attr(strings.TrimPrefix(o, "attr:")); ok {
					out = append(out, v)
				}
			default:
				selErr = fmt.Errorf("unknown output %q", o)
				return false
			}
		}
		return true
	})
	if selErr != nil {
		return nil, selErr
	}
	return out, nil
}

// MetaReport summarises the on-page SEO signals of a document.
type MetaReport struct {
	Title            string            `json:"title"`
	TitleLength      int               `json:"title_length"`
	Description      string            `json:"description"`
	DescriptionLen   int               `json:"description_length"`
	Canonical        string            `json:"canonical,omitempty"`
	Robots           string            `json:"robots,omitempty"`
	Lang             string            `json:"lang,omitempty"`
	H1               []string          `json:"h1"`
	H2Count          int               `json:"h2_count"`
	Images           int               `json:"images"`
	ImagesMissingAlt int               `json:"images_missing_alt"`
	OpenGraph        map[string]string `json:"open_graph,omitempty"`
}

// Meta reads title, description, canonical link, robots, heading and image
// counts and og: properties from a document.
func Meta(input string) (MetaReport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return MetaReport{}, fmt.Errorf("parse HTML: %w", err)
	}

	var r MetaReport
	r.Title = strings.TrimSpace(doc.Find("title").First().Text())
	r.TitleLength = len([]rune(r.Title))
	r.Description = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	r.DescriptionLen = len([]rune(r.Description))
	r.Canonical = doc.Find(`link[rel="canonical"]`).AttrOr("href", "")
	r.Robots = doc.Find(`meta[name="robots"]`).AttrOr("content", "")
	r.Lang = doc.Find("html").AttrOr("lang", "")

	r.H1 = []string{}
	doc.Find("h1").Each(func(i int, s *goquery.Selection) {
		r.H1 = append(r.H1, spacePattern.ReplaceAllString(strings.TrimSpace(s.Text()), " "))
	})
	r.H2Count = doc.Find("h2").Length()

	imgs := doc.Find("img")
	r.Images = imgs.Length()
	imgs.Each(func(i int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			r.ImagesMissingAlt++
		}
	})

	doc.Find(`meta[property^="og:"]`).Each(func(i int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		if r.OpenGraph == nil {
			r.OpenGraph = make(map[string]string)
		}
		r.OpenGraph[strings.TrimPrefix(prop, "og:")] = s.AttrOr("content", "")
	})
	return r, nil
}

// Article is the main readable content of a page.
type Article struct {
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Content  string `json:"text"`
}

// Readable extracts the article body from a full HTML page. pageURL is
// optional and only used to resolve relative links.
func Readable(input, pageURL string) (Article, error) {
	var u *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return Article{}, fmt.Errorf("invalid URL: %s", pageURL)
		}
		u = parsed
	}

	article, err := readability.FromReader(strings.NewReader(input), u)
	if err != nil {
		return Article{}, fmt.Errorf("parse content: %w", err)
	}
	return Article{
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Excerpt:  article.Excerpt,
		Content:  strings.TrimSpace(article.TextContent),
	}, nil
}
