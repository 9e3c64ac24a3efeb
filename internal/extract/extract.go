// Package extract converts source documents into the ordered line
// sequences the classification engines consume. Line order is preserved
// within and across pages, sheets and table rows.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// EmailDocument is the extraction result for a mailed tech pack: the text
// body and every supported attachment flattened into one line stream.
type EmailDocument struct {
	Subject         string
	TextBody        string
	AttachmentNames []string
	Lines           []string
}

// LinesFromFile reads the document at path and extracts its lines, picking
// the parser from the file extension. Unknown extensions are read as plain
// text.
func LinesFromFile(path string) ([]string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LinesFromBytes(filepath.Base(path), blob)
}

// LinesFromBytes extracts lines from an in-memory document.
func LinesFromBytes(filename string, blob []byte) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return linesFromPDF(blob)
	case ".xlsx", ".xls":
		return linesFromXLSX(blob)
	case ".html", ".htm":
		return linesFromHTML(string(blob))
	case ".eml":
		doc, err := FromEmailRaw(blob)
		if err != nil {
			return nil, err
		}
		return doc.Lines, nil
	default:
		return splitLines(string(blob)), nil
	}
}

// FromEmailRaw parses a raw RFC822 message and extracts lines from its
// text body followed by every PDF/XLSX/HTML attachment, in order.
func FromEmailRaw(raw []byte) (EmailDocument, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return EmailDocument{}, err
	}

	doc := EmailDocument{
		Subject:  env.GetHeader("Subject"),
		TextBody: env.Text,
	}
	if env.Text != "" {
		doc.Lines = append(doc.Lines, splitLines(env.Text)...)
	}

	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		doc.AttachmentNames = append(doc.AttachmentNames, filename)

		switch strings.ToLower(filepath.Ext(filename)) {
		case ".pdf", ".xlsx", ".xls", ".html", ".htm":
			extra, err := LinesFromBytes(filename, att.Content)
			if err != nil {
				fmt.Fprintf(os.Stderr, "attachment extract failed: %s: %v\n", filename, err)
				continue
			}
			doc.Lines = append(doc.Lines, extra...)
		}
	}

	return doc, nil
}

func linesFromPDF(blob []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, err
	}

	out := []string{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		out = append(out, splitLines(text)...)
	}
	return out, nil
}

// linesFromXLSX flattens each sheet row into one line, cells joined with a
// single space, so fixed-column technical tables read like their printed
// form.
func linesFromXLSX(blob []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := []string{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				c = strings.TrimSpace(c)
				if c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) == 0 {
				continue
			}
			out = append(out, strings.Join(cells, " "))
		}
	}
	return out, nil
}

// linesFromHTML extracts table rows (cells joined with a space) followed by
// block-level text, preserving document order within each pass.
func linesFromHTML(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	out := []string{}
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if text != "" {
				cells = append(cells, text)
			}
		})
		if len(cells) > 0 {
			out = append(out, strings.Join(cells, " "))
		}
	})
	doc.Find("h1,h2,h3,h4,p,li").Each(func(_ int, block *goquery.Selection) {
		out = append(out, splitLines(block.Text())...)
	})
	return out, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
