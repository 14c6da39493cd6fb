package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultsBlob_Empty(t *testing.T) {
	blob, err := DecodeResultsBlob(nil)
	require.NoError(t, err)
	assert.Empty(t, blob.Documents)

	blob, err = DecodeResultsBlob(json.RawMessage(""))
	require.NoError(t, err)
	assert.Empty(t, blob.Documents)
}

func TestDecodeResultsBlob_Invalid(t *testing.T) {
	_, err := DecodeResultsBlob(json.RawMessage("{not json"))
	assert.Error(t, err)
}

func TestMergePricing_PreservesAncillaryFields(t *testing.T) {
	docTypeID := int64(7)
	raw, err := (&ResultsBlob{
		Documents:      []ResultDocument{{Label: "old", Pages: 1}},
		BaseRate:       35,
		DocumentTypeID: &docTypeID,
		ReferenceNotes: "client prefers UK spelling",
		ReferenceFiles: []ReferenceFile{{Path: "ref/a.pdf", Filename: "a.pdf"}},
		CountryOfIssue: "Brazil",
	}).Encode()
	require.NoError(t, err)

	blob, err := DecodeResultsBlob(raw)
	require.NoError(t, err)

	blob.MergePricing([]ResultDocument{{Label: "passport", Pages: 2}}, 40, 0.05, "CAD")
	raw, err = blob.Encode()
	require.NoError(t, err)

	decoded, err := DecodeResultsBlob(raw)
	require.NoError(t, err)
	require.Len(t, decoded.Documents, 1)
	assert.Equal(t, "passport", decoded.Documents[0].Label)
	assert.Equal(t, 40.0, decoded.BaseRate)
	assert.Equal(t, "CAD", decoded.Currency)

	require.NotNil(t, decoded.DocumentTypeID)
	assert.Equal(t, int64(7), *decoded.DocumentTypeID)
	assert.Equal(t, "client prefers UK spelling", decoded.ReferenceNotes)
	assert.Equal(t, "Brazil", decoded.CountryOfIssue)
	require.Len(t, decoded.ReferenceFiles, 1)
	assert.Equal(t, "a.pdf", decoded.ReferenceFiles[0].Filename)
}
