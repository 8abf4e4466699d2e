package docs

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/internal/util"
)

const flagRowColor = "#EEEEEE"

var (
	spaceRun     = regexp.MustCompile(` {2,}`)
	capabilities = []string{"create", "query", "edit", "multiuse"}
)

// ParseHTMLString parses one command reference page
func ParseHTMLString(page string) (*CommandDocumentation, error) {
	return ParseHTML(strings.NewReader(page))
}

// ParseHTML parses one command reference page.
// Markup that deviates from the known layout yields errors.ErrMalformedPage.
func ParseHTML(r io.Reader) (*CommandDocumentation, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse HTML")
	}

	out := &CommandDocumentation{}
	out.Undoable, out.Queryable, out.Editable = capabilitiesOf(doc)
	out.Description = description(doc)

	if out.Returns, err = returnValues(doc); err != nil {
		return nil, err
	}
	if out.Flags, err = flags(doc); err != nil {
		return nil, err
	}
	out.Examples = examples(doc)

	if h1 := doc.Find("h1").First(); h1.Length() > 0 && strings.Contains(h1.Text(), "Obsolete") {
		out.Obsolete = true
		out.ObsoleteMessage = obsoleteMessage(doc)
	}

	return out, nil
}

// capabilitiesOf reads the sentence following the synopsis paragraph, e.g.
// "ls is <b>NOT undoable</b>, <b>queryable</b>, and <b>NOT editable</b>."
func capabilitiesOf(doc *goquery.Document) (undoable, queryable, editable bool) {
	sentence := strippedText(doc.Find("p#synopsis").First().Next(), " ")
	return !strings.Contains(sentence, "NOT undoable"),
		!strings.Contains(sentence, "NOT queryable"),
		!strings.Contains(sentence, "NOT editable")
}

func description(doc *goquery.Document) string {
	body := doc.Find("body").First()
	returnHeader := doc.Find(`a[name="hReturn"]`).First()
	if body.Length() == 0 || returnHeader.Length() == 0 {
		return ""
	}
	stop := returnHeader.Parent().Get(0)
	synopsis := nodeOf(doc.Find("p#synopsis"))

	var b strings.Builder
	started := false
	elements := 0
	for child := body.Get(0).FirstChild; child != nil && child != stop; child = child.NextSibling {
		if child == synopsis {
			started = true
			continue
		}
		if !started {
			continue
		}

		switch child.Type {
		case html.ElementNode:
			elements++
			// capability sentence
			if elements == 1 {
				continue
			}
			b.WriteString(" ")
			b.WriteString(describeElement(child))
		case html.TextNode:
			if text := strings.TrimSpace(strings.ReplaceAll(child.Data, "\n", " ")); text != "" {
				b.WriteString(" ")
				b.WriteString(text)
			}
		}
	}

	text := strings.ReplaceAll(b.String(), "\n ", "\n")
	text = strings.ReplaceAll(text, " \n", "\n")
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

func describeElement(n *html.Node) string {
	text := nodeText(n, " ")
	emphasised := strings.HasPrefix(text, "*") || strings.HasSuffix(text, "*")
	switch n.Data {
	case "i":
		if !emphasised {
			return "*" + text + "*"
		}
	case "b":
		if !emphasised {
			return "**" + text + "**"
		}
	case "p":
		return text + "\n"
	case "br":
		return "\n"
	}
	return text
}

func returnValues(doc *goquery.Document) ([]ReturnValue, error) {
	header := doc.Find(`a[name="hReturn"]`).First()
	if header.Length() == 0 {
		return nil, nil
	}

	section := header.Parent().Next()
	if section.Length() == 0 {
		return nil, errors.NewMalformedPageError("return header has no following element")
	}

	switch goquery.NodeName(section) {
	case "p":
		return []ReturnValue{{Type: strippedText(section, "")}}, nil
	case "table":
		var values []ReturnValue
		section.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.ChildrenFiltered("td")
			if cells.Length() != 2 {
				return
			}
			values = append(values, ReturnValue{
				Type:        strippedText(cells.Eq(0), ""),
				Description: util.CollapseWhitespace(strippedText(cells.Eq(1), " ")),
			})
		})
		return values, nil
	default:
		return nil, errors.NewMalformedPageError("expected a paragraph or table after the return header, got <%s>", goquery.NodeName(section))
	}
}

func flags(doc *goquery.Document) ([]Flag, error) {
	rows := doc.Find("tr[bgcolor]").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return strings.EqualFold(tr.AttrOr("bgcolor", ""), flagRowColor)
	})

	var out []Flag
	var err error
	rows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		var flag Flag
		if flag, err = flagRow(tr); err != nil {
			err = errors.Wrapf(err, "flag row %d", i)
			return false
		}
		out = append(out, flag)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func flagRow(tr *goquery.Selection) (Flag, error) {
	cells := tr.ChildrenFiltered("td")
	if cells.Length() != 3 {
		return Flag{}, errors.NewMalformedPageError("expected 3 cells in flag row, got %d", cells.Length())
	}

	names := cells.Eq(0).Find("b")
	if names.Length() != 2 {
		return Flag{}, errors.NewMalformedPageError("expected long and short flag name, got %d names", names.Length())
	}

	props := cells.Eq(2)
	has := make(map[string]bool, len(capabilities))
	for _, c := range capabilities {
		has[c] = props.Find(`img[alt="` + c + `"]`).Length() > 0
	}

	return Flag{
		NameLong:    strippedText(names.Eq(0), ""),
		NameShort:   strippedText(names.Eq(1), ""),
		ArgType:     strippedText(cells.Eq(1), ""),
		Description: util.CollapseWhitespace(strippedText(tr.Next(), " ")),
		Create:      has["create"],
		Query:       has["query"],
		Edit:        has["edit"],
		MultiUse:    has["multiuse"],
	}, nil
}

// examples returns the first <pre> following the examples anchor in
// document order, which is usually not a sibling of the anchor.
func examples(doc *goquery.Document) string {
	anchor := nodeOf(doc.Find(`a[name="hExamples"]`))
	if anchor == nil {
		return ""
	}

	after := false
	var found *html.Node
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n == anchor {
			after = true
		} else if after && n.Type == html.ElementNode && n.Data == "pre" {
			found = n
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc.Get(0))

	if found == nil {
		return ""
	}
	return strings.TrimSpace(goquery.NewDocumentFromNode(found).Text())
}

func obsoleteMessage(doc *goquery.Document) string {
	body := nodeOf(doc.Find("body"))
	if body == nil {
		return ObsoleteFallback
	}

	var parts []string
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			el := goquery.NewDocumentFromNode(child).Selection
			if el.AttrOr("id", "") == "banner" || el.HasClass("toolbar") {
				continue
			}
			if text := nodeText(child, " "); text != "" {
				parts = append(parts, text)
			}
		case html.TextNode:
			if text := strings.TrimSpace(child.Data); text != "" {
				parts = append(parts, text)
			}
		}
	}

	if msg := strings.TrimSpace(strings.Join(parts, " ")); msg != "" {
		return msg
	}
	return ObsoleteFallback
}

// nodeOf returns the first node of the selection, or nil when it is empty
func nodeOf(s *goquery.Selection) *html.Node {
	if s.Length() == 0 {
		return nil
	}
	return s.Get(0)
}

// strippedText joins the trimmed, non-blank text nodes below the selection with sep
func strippedText(s *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range s.Nodes {
		if text := nodeText(n, sep); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, sep)
}

func nodeText(n *html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, sep)
}
