package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
)

// CSVParser handles CSV files. Rows are grouped into batches, each led by a
// level-2 heading so long tables get a navigable outline.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &doctree.Document{Title: trimExt(filename)}
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))
		batch := dataRows[i:end]

		var text strings.Builder
		text.WriteString(strings.Join(headers, ", ") + "\n")
		for _, row := range batch {
			text.WriteString(strings.Join(row, ", "))
			text.WriteString("\n")
		}

		// 1-indexed, skip header
		label := fmt.Sprintf("Rows %d-%d", i+2, end+1)
		doc.Append(&doctree.Block{
			ID:    doctree.Slugify(label),
			Kind:  doctree.KindHeading,
			Level: 2,
			Text:  label,
		})
		doc.Append(&doctree.Block{
			Kind: doctree.KindTable,
			Text: strings.TrimSpace(text.String()),
		})
	}

	return doc, nil
}
