package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_Basic(t *testing.T) {
	rows := ParseCSV("filename,billable_pages\npassport.pdf,2\nvisa.pdf,1\n")

	require.Len(t, rows, 2)
	assert.Equal(t, "passport.pdf", rows[0].Get("filename"))
	assert.Equal(t, 2.0, rows[0].Float(0, "billable_pages"))
	assert.Equal(t, "visa.pdf", rows[1].Get("filename"))
}

func TestParseCSV_QuotedFields(t *testing.T) {
	rows := ParseCSV("filename,notes\n\"a, b.pdf\",\"said \"\"hi\"\"\"\n")

	require.Len(t, rows, 1)
	assert.Equal(t, "a, b.pdf", rows[0].Get("filename"))
	assert.Equal(t, `said "hi"`, rows[0].Get("notes"))
}

func TestParseCSV_RaggedAndBlankRows(t *testing.T) {
	rows := ParseCSV("a,b,c\n1,2\n\n3,4,5,6\n")

	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Get("a"))
	assert.Equal(t, "", rows[0].Get("c"))
	assert.Equal(t, "5", rows[1].Get("c"))
}

func TestParseCSV_EmptyInput(t *testing.T) {
	assert.Nil(t, ParseCSV(""))
	assert.Nil(t, ParseCSV("   \n  "))
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	assert.Empty(t, ParseCSV("a,b,c\n"))
}

func TestSplitRaw_CombinedBlob(t *testing.T) {
	raw := strings.Join([]string{
		"page_number,filename,billable_pages",
		"1,passport.pdf,1",
		"id,quote_id,job_id,doc_type,billable_pages",
		"9,q1,CS12345,passport,1",
	}, "\n")

	pages, lines := SplitRaw(raw)
	assert.Contains(t, pages, "page_number")
	assert.NotContains(t, pages, "job_id")
	assert.True(t, strings.HasPrefix(lines, "id,quote_id,job_id,"))
}

func TestSplitRaw_CRLF(t *testing.T) {
	raw := "page_number,filename\r\n1,a.pdf\r\nid,quote_id,job_id,doc_type\r\n9,q1,CS1,passport\r\n"
	pages, lines := SplitRaw(raw)
	assert.Contains(t, pages, "a.pdf")
	assert.Contains(t, lines, "passport")
}

func TestSplitRaw_LinesOnly(t *testing.T) {
	raw := "id,quote_id,job_id,doc_type\n9,q1,CS1,passport\n"
	pages, lines := SplitRaw(raw)
	assert.Empty(t, pages)
	assert.Equal(t, raw, lines)
}

func TestSplitRaw_PagesOnlySniffed(t *testing.T) {
	raw := "page_number,filename,billable_pages\n1,a.pdf,1\n"
	pages, lines := SplitRaw(raw)
	assert.Equal(t, raw, pages)
	assert.Empty(t, lines)
}

func TestSplitRaw_UnknownHeaderTreatedAsLines(t *testing.T) {
	raw := "doc_type,billable_pages\npassport,2\n"
	pages, lines := SplitRaw(raw)
	assert.Empty(t, pages)
	assert.Equal(t, raw, lines)
}

func TestRow_GetAndFloat(t *testing.T) {
	r := Row{"a": " x ", "b": "", "c": "1.5", "d": "junk"}
	assert.Equal(t, "x", r.Get("b", "a"))
	assert.Equal(t, "", r.Get("missing"))
	assert.Equal(t, 1.5, r.Float(9, "b", "c"))
	assert.Equal(t, 9.0, r.Float(9, "d"))
}

func TestFirstHelpers(t *testing.T) {
	one := 1.0
	s := "x"
	blank := "  "
	assert.Equal(t, &one, FirstFloat(nil, &one))
	assert.Nil(t, FirstFloat(nil, nil))
	assert.Equal(t, &s, FirstString(nil, &blank, &s))
	assert.Nil(t, FirstString(&blank))
}
