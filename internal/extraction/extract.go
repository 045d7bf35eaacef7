// Package extraction parses raw page HTML into the structured feature set
// the scoring engine consumes: title and meta elements, heading hierarchy,
// images, links, schema markup, and AI-readiness text patterns.
//
// Extraction never fails on malformed markup. Missing elements degrade to
// empty or zero values rather than errors.
package extraction

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/seo-consultant/internal/types"
)

// noiseSelector lists elements excluded from visible page text.
const noiseSelector = "script, style, nav, header, footer, aside, noscript"

var (
	tocClassRe     = regexp.MustCompile(`(?i)toc|table.*contents`)
	sectionClassRe = regexp.MustCompile(`(?i)content|section|article`)
	breadcrumbRe   = regexp.MustCompile(`(?i)breadcrumb`)
)

// Extractor turns page HTML into PageFeatures. The zero value is usable;
// Entities is an optional NLP collaborator and may be nil.
type Extractor struct {
	Entities EntityExtractor
}

// NewExtractor returns an extractor with no optional collaborators attached.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html into a PageFeatures record for pageURL.
func (e *Extractor) Extract(html, pageURL string) *types.PageFeatures {
	features := &types.PageFeatures{
		URL:       pageURL,
		Questions: []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable input degrades to an empty feature set
		return features
	}

	extractTitle(doc, features)
	extractMetaDescription(doc, features)
	extractHeadings(doc, features)
	extractImages(doc, features)
	extractLinks(doc, features, pageURL)
	extractSchema(doc, features)
	extractStructureMarkers(doc, features)

	text := visibleText(doc)
	features.WordCount = len(strings.Fields(text))
	features.Questions, features.QuestionCount = DetectQuestions(text)
	features.FAQIndicators = FindFAQIndicators(text)
	features.AnswerPatterns = CountAnswerPatterns(text)
	features.ListPatterns = CountListPatterns(text)
	features.Keywords = AnalyzeKeywords(text)

	if e.Entities != nil {
		features.Entities = e.Entities.Extract(text)
	}

	return features
}

// Extract parses html into a PageFeatures record using a default extractor
// with no optional collaborators.
func Extract(html, pageURL string) *types.PageFeatures {
	return NewExtractor().Extract(html, pageURL)
}

// VisibleText returns the page's visible text with scripts, styles and
// chrome elements (nav, header, footer, aside) removed.
func VisibleText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return visibleText(doc)
}

func visibleText(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find(noiseSelector).Remove()
	body := clone.Find("body")
	var text string
	if body.Length() > 0 {
		text = body.Text()
	} else {
		text = clone.Text()
	}
	return cleanWhitespace(text)
}

func extractTitle(doc *goquery.Document, features *types.PageFeatures) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	features.Title = types.TitleInfo{
		Text:      title,
		Length:    len(title),
		WordCount: len(strings.Fields(title)),
	}
}

func extractMetaDescription(doc *goquery.Document, features *types.PageFeatures) {
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	desc = strings.TrimSpace(desc)
	features.MetaDescription = types.MetaInfo{
		Text:   desc,
		Length: len(desc),
	}
}

func extractHeadings(doc *goquery.Document, features *types.PageFeatures) {
	levels := [6]*types.HeadingLevel{
		&features.Headings.H1, &features.Headings.H2, &features.Headings.H3,
		&features.Headings.H4, &features.Headings.H5, &features.Headings.H6,
	}

	for i, level := range levels {
		doc.Find(fmt.Sprintf("h%d", i+1)).Each(func(_ int, s *goquery.Selection) {
			level.Count++
			if text := strings.TrimSpace(s.Text()); text != "" {
				level.Texts = append(level.Texts, text)
			}
		})
		features.Headings.TotalCount += level.Count
	}

	// Walk headings in document order; a jump of more than one level between
	// adjacent headings is a hierarchy issue (e.g. H2 directly to H4).
	prev := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(s.Get(0).Data[1] - '0')
		if prev > 0 && level > prev+1 {
			features.Headings.HierarchyIssues = append(features.Headings.HierarchyIssues,
				fmt.Sprintf("Jump from H%d to H%d", prev, level))
		}
		prev = level
	})

	features.Headings.HasH1 = features.Headings.H1.Count >= 1
	features.Headings.MultipleH1 = features.Headings.H1.Count > 1
}

func extractImages(doc *goquery.Document, features *types.PageFeatures) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		features.Images.Total++
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			features.Images.WithAlt++
		} else {
			features.Images.WithoutAlt++
		}
	})
}

func extractLinks(doc *goquery.Document, features *types.PageFeatures, pageURL string) {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		if base != nil {
			linkURL = base.ResolveReference(linkURL)
		}

		if base != nil && linkURL.Host == base.Host {
			features.Links.Internal++
		} else if linkURL.Host != "" {
			features.Links.External++
		} else {
			features.Links.Internal++
		}
	})
}

func extractSchema(doc *goquery.Document, features *types.PageFeatures) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		payload := strings.TrimSpace(s.Text())
		if payload == "" {
			return
		}
		features.Schema.Count++
		features.Schema.Payloads = append(features.Schema.Payloads, payload)
		if strings.Contains(payload, "FAQPage") {
			features.Schema.HasFAQSchema = true
		}
		if strings.Contains(payload, "QAPage") {
			features.Schema.HasQASchema = true
		}
	})
}

func extractStructureMarkers(doc *goquery.Document, features *types.PageFeatures) {
	doc.Find("[class], [id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		if tocClassRe.MatchString(class) || tocClassRe.MatchString(id) {
			features.HasTOC = true
			return false
		}
		return true
	})

	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if sectionClassRe.MatchString(class) {
			features.ContentSections++
		}
		if !features.HasBreadcrumbs && breadcrumbRe.MatchString(class) {
			features.HasBreadcrumbs = true
		}
	})
}

// cleanWhitespace collapses blank lines and trims each remaining line.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
