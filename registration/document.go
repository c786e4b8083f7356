package registration

import (
	"errors"
	"fmt"

	"github.com/piprate/json-gold/ld"

	"github.com/pilacorp/go-userregistry-sdk/address"
)

const (
	schemaVocab      = "https://schema.org/"
	nquadsFormat     = "application/n-quads"
	defaultAlgorithm = "URDNA2015"
)

// ErrNoProfile is returned when rendering a view without a registered profile.
var ErrNoProfile = errors.New("no registered profile")

// AccountID returns the CAIP-10 identifier of an account on an EVM chain.
func AccountID(chainID int64, account string) string {
	return fmt.Sprintf("eip155:%d:%s", chainID, account)
}

func (m *ProfileViewModel) personDocument(view *ProfileView) (map[string]interface{}, error) {
	if view == nil || view.Profile == nil {
		return nil, ErrNoProfile
	}
	p := view.Profile
	return map[string]interface{}{
		"@context": map[string]interface{}{
			"@vocab": schemaVocab,
		},
		"@id":        AccountID(m.chainID, p.AccountAddress),
		"@type":      "Person",
		"name":       p.Name,
		"age":        float64(p.Age),
		"identifier": address.Format(p.AccountAddress),
	}, nil
}

// Document renders the profile of view as a compacted schema.org Person.
func (m *ProfileViewModel) Document(view *ProfileView) (map[string]interface{}, error) {
	doc, err := m.personDocument(view)
	if err != nil {
		return nil, err
	}

	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1

	proc := ld.NewJsonLdProcessor()
	compacted, err := proc.Compact(doc, map[string]interface{}{
		"@context": map[string]interface{}{"@vocab": schemaVocab},
	}, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to compact profile document: %w", err)
	}
	return compacted, nil
}

// CanonicalDocument returns the URDNA2015 N-Quads form of the profile
// document, suitable for hashing.
func (m *ProfileViewModel) CanonicalDocument(view *ProfileView) ([]byte, error) {
	doc, err := m.personDocument(view)
	if err != nil {
		return nil, err
	}

	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Algorithm = defaultAlgorithm
	ldOptions.Format = nquadsFormat

	proc := ld.NewJsonLdProcessor()
	normalized, err := proc.Normalize(doc, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize profile document: %w", err)
	}

	result, ok := normalized.(string)
	if !ok {
		return nil, errors.New("failed to normalize profile document, invalid view")
	}
	return []byte(result), nil
}
