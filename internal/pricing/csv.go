package pricing

import (
	"encoding/csv"
	"io"
	"strings"
)

// lineSectionHeader is the header prefix of the line-level section inside a
// combined raw export. When present, everything from that line on belongs to
// the lines table.
const lineSectionHeader = "id,quote_id,job_id,"

// ParseCSV parses comma-separated text with a required header row into Rows.
// Quoted fields with embedded commas and doubled quotes are handled; blank
// lines and ragged rows are tolerated. Malformed input yields no rows rather
// than an error: ingestion treats an unparseable section as absent.
func ParseCSV(text string) []Row {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		row := Row{}
		empty := true
		for i, name := range header {
			val := ""
			if i < len(record) {
				val = record[i]
			}
			row[name] = val
			if strings.TrimSpace(val) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// SplitRaw splits a combined export blob into its page-level and line-level
// CSV sections. The boundary is the line-level header; when it is absent the
// whole blob is classified by sniffing the first header for a page_number
// column.
func SplitRaw(raw string) (pagesCSV, linesCSV string) {
	raw = normalizeNewlines(raw)
	if idx := strings.Index(raw, "\n"+lineSectionHeader); idx > -1 {
		return raw[:idx], raw[idx+1:]
	}
	if strings.HasPrefix(raw, lineSectionHeader) {
		return "", raw
	}
	header := raw
	if nl := strings.IndexByte(raw, '\n'); nl > -1 {
		header = raw[:nl]
	}
	if strings.Contains(strings.ToLower(header), "page_number") {
		return raw, ""
	}
	return "", raw
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
