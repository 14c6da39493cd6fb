package pricing

import "sort"

// DocumentAggregate accumulates per-document OCR metrics across input rows.
// AvgConfidence is a page-count-weighted running average; the multipliers
// are running maxima because billing must use the worst case observed.
type DocumentAggregate struct {
	Key                  string
	Filename             string
	DocType              string
	Pages                float64
	AvgConfidence        float64
	ComplexityMultiplier float64
	LanguageMultiplier   float64
}

// Aggregate groups page-level and summarized line-level rows into one
// aggregate per document. Page rows key on filename, then document_type,
// then the literal "document". Line rows key on document type only and merge
// page counts via max rather than sum so supplying both detailed and
// summarized input for the same document type never double-counts.
func Aggregate(pageRows, lineRows []Row) map[string]*DocumentAggregate {
	byDoc := make(map[string]*DocumentAggregate)

	for _, r := range pageRows {
		filename := r.Get("filename")
		docType := r.Get("document_type")
		key := filename
		if key == "" {
			key = docType
		}
		if key == "" {
			key = "document"
		}

		billable := r.Float(0, "billable_pages")
		conf := r.Float(1, "page_confidence_score", "confidence_score")
		cx := r.Float(1, "complexity_multiplier")
		lm := r.Float(1, "language_multiplier")

		agg := byDoc[key]
		if agg == nil {
			agg = &DocumentAggregate{Key: key, Filename: filename, DocType: docType, ComplexityMultiplier: 1, LanguageMultiplier: 1}
			byDoc[key] = agg
		}

		totalPages := agg.Pages + billable
		if totalPages > 0 {
			agg.AvgConfidence = (agg.AvgConfidence*agg.Pages + conf*billable) / totalPages
		}
		agg.Pages = totalPages
		agg.ComplexityMultiplier = maxOr1(agg.ComplexityMultiplier, cx)
		agg.LanguageMultiplier = maxOr1(agg.LanguageMultiplier, lm)
	}

	for _, r := range lineRows {
		docType := r.Get("doc_type", "document_type")
		if docType == "" {
			continue
		}

		billable := r.Float(0, "billable_pages")
		if billable == 0 {
			billable = r.Float(0, "amount_pages")
		}
		conf := r.Float(1, "average_confidence_score")
		cx := r.Float(1, "complexity_multiplier")
		lm := r.Float(1, "language_multiplier")

		agg := byDoc[docType]
		if agg == nil {
			agg = &DocumentAggregate{Key: docType, DocType: docType, ComplexityMultiplier: 1, LanguageMultiplier: 1}
			byDoc[docType] = agg
		}

		// Summary rows describe the same pages the detailed section may have
		// already counted: take the larger figure, never the sum.
		totalPages := agg.Pages
		if billable > totalPages {
			totalPages = billable
		}
		if totalPages > 0 && billable > 0 {
			agg.AvgConfidence = (agg.AvgConfidence*agg.Pages + conf*billable) / (agg.Pages + billable)
		} else if agg.AvgConfidence == 0 {
			agg.AvgConfidence = conf
		}
		agg.Pages = totalPages
		agg.ComplexityMultiplier = maxOr1(agg.ComplexityMultiplier, cx)
		agg.LanguageMultiplier = maxOr1(agg.LanguageMultiplier, lm)
	}

	return byDoc
}

// SortedKeys returns the aggregate keys in lexical order so downstream
// output is deterministic.
func SortedKeys(byDoc map[string]*DocumentAggregate) []string {
	keys := make([]string, 0, len(byDoc))
	for k := range byDoc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Label returns the display label for a document: document type when known,
// else filename, else the grouping key.
func (a *DocumentAggregate) Label() string {
	if a.DocType != "" {
		return a.DocType
	}
	if a.Filename != "" {
		return a.Filename
	}
	return a.Key
}

func maxOr1(a, b float64) float64 {
	if b <= 0 {
		b = 1
	}
	if a > b {
		return a
	}
	return b
}
