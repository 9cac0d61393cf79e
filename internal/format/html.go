package format

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/convert"
)

var (
	documentPattern = regexp.MustCompile(`(?i)^\s*(<!doctype|<html)`)
	collapseSpace   = regexp.MustCompile(`\s+`)
)

var voidTags = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true,
	atom.Hr: true, atom.Img: true, atom.Input: true, atom.Link: true, atom.Meta: true,
	atom.Param: true, atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// rawTags keep their content byte for byte.
var rawTags = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Pre: true, atom.Textarea: true,
}

// HTML parses markup and prints one element per line indented by two
// spaces. Full documents keep their html/head/body skeleton; fragments are
// printed as given.
func HTML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", convert.ErrEmptyInput
	}

	var nodes []*html.Node
	if documentPattern.MatchString(input) {
		doc, err := html.Parse(strings.NewReader(input))
		if err != nil {
			return "", fmt.Errorf("invalid HTML: %w", err)
		}
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
	} else {
		body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		frag, err := html.ParseFragment(strings.NewReader(input), body)
		if err != nil {
			return "", fmt.Errorf("invalid HTML: %w", err)
		}
		nodes = frag
	}

	p := &htmlPrinter{}
	for _, n := range nodes {
		if err := p.node(n, 0); err != nil {
			return "", err
		}
	}
	return strings.Join(p.lines, "\n"), nil
}

type htmlPrinter struct {
	lines []string
}

func (p *htmlPrinter) emit(depth int, s string) {
	p.lines = append(p.lines, strings.Repeat("  ", depth)+s)
}

func (p *htmlPrinter) node(n *html.Node, depth int) error {
	switch n.Type {
	case html.DoctypeNode:
		p.emit(depth, "<!DOCTYPE "+n.Data+">")
	case html.CommentNode:
		p.emit(depth, "<!--"+n.Data+"-->")
	case html.TextNode:
		text := strings.TrimSpace(collapseSpace.ReplaceAllString(n.Data, " "))
		if text != "" {
			p.emit(depth, html.EscapeString(text))
		}
	case html.ElementNode:
		return p.element(n, depth)
	}
	return nil
}

func (p *htmlPrinter) element(n *html.Node, depth int) error {
	open := startTag(n)
	if voidTags[n.DataAtom] {
		p.emit(depth, open)
		return nil
	}
	closeTag := "</" + n.Data + ">"

	if rawTags[n.DataAtom] {
		var buf bytes.Buffer
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
				buf.WriteString(c.Data)
			case c.Type == html.TextNode:
				buf.WriteString(html.EscapeString(c.Data))
			default:
				if err := html.Render(&buf, c); err != nil {
					return err
				}
			}
		}
		p.emit(depth, open+buf.String()+closeTag)
		return nil
	}

	if n.FirstChild == nil {
		p.emit(depth, open+closeTag)
		return nil
	}
	if n.FirstChild == n.LastChild && n.FirstChild.Type == html.TextNode {
		text := strings.TrimSpace(collapseSpace.ReplaceAllString(n.FirstChild.Data, " "))
		p.emit(depth, open+html.EscapeString(text)+closeTag)
		return nil
	}

	p.emit(depth, open)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.node(c, depth+1); err != nil {
			return err
		}
	}
	p.emit(depth, closeTag)
	return nil
}

func startTag(n *html.Node) string {
	var b strings.Builder
	b.WriteString("<" + n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace + ":")
		}
		b.WriteString(a.Key + `="` + html.EscapeString(a.Val) + `"`)
	}
	b.WriteByte('>')
	return b.String()
}
