// Package parser turns raw CNIC OCR text into a validated set of identity
// fields. It runs four extraction strategies in order (pattern, position,
// context, fallback), each only filling fields that are still empty, followed
// by a cleanup pass and a completeness score.
package parser

// Field keys of the extracted record, in canonical order.
const (
	FieldIdentityNumber = "identity_number"
	FieldName           = "name"
	FieldFatherName     = "father_name"
	FieldGender         = "gender"
	FieldCountryOfStay  = "country_of_stay"
	FieldDateOfBirth    = "date_of_birth"
	FieldDateOfIssue    = "date_of_issue"
	FieldDateOfExpiry   = "date_of_expiry"
)

var fieldOrder = []string{
	FieldIdentityNumber,
	FieldName,
	FieldFatherName,
	FieldGender,
	FieldCountryOfStay,
	FieldDateOfBirth,
	FieldDateOfIssue,
	FieldDateOfExpiry,
}

// dateFieldOrder is the positional assignment order used by the fallback
// extractor when dates carry no label.
var dateFieldOrder = []string{FieldDateOfBirth, FieldDateOfIssue, FieldDateOfExpiry}

// Record is the structured result of one extraction. A non-nil field has
// already passed its per-field validation; absent values stay nil.
type Record struct {
	IdentityNumber *string `json:"identity_number"`
	Name           *string `json:"name"`
	FatherName     *string `json:"father_name"`
	Gender         *string `json:"gender"`
	CountryOfStay  *string `json:"country_of_stay"`
	DateOfBirth    *string `json:"date_of_birth"`
	DateOfIssue    *string `json:"date_of_issue"`
	DateOfExpiry   *string `json:"date_of_expiry"`
}

// Result bundles the record with its derived completeness score.
type Result struct {
	Record     Record  `json:"record"`
	Confidence float64 `json:"confidence"`
	Filled     int     `json:"filled_fields"`
	Total      int     `json:"total_fields"`
}

// RawInput is the read-only input consumed by every strategy: the full OCR
// text plus the provider's own block segmentation (may be empty).
type RawInput struct {
	Text   string
	Blocks []string
}

// extraction is the mutable accumulator threaded through the strategies.
// Strategies write through setIfEmpty so the first writer always wins; only
// the final cleanup pass may null a value out again.
type extraction struct {
	fields map[string]string
}

func newExtraction() *extraction {
	return &extraction{fields: make(map[string]string, len(fieldOrder))}
}

func (e *extraction) get(field string) string { return e.fields[field] }

func (e *extraction) has(field string) bool { return e.fields[field] != "" }

// setIfEmpty canonicalizes value for the field and stores it unless the
// field is already filled or the value is blank. Canonicalizing here keeps
// the record invariant: a present value is already in its final form, so the
// cleanup pass only ever nulls, never rewrites.
func (e *extraction) setIfEmpty(field, value string) {
	value = canonicalValue(field, value)
	if value == "" || e.has(field) {
		return
	}
	e.fields[field] = value
}

func (e *extraction) clear(field string) { delete(e.fields, field) }

func (e *extraction) record() Record {
	opt := func(field string) *string {
		if v, ok := e.fields[field]; ok && v != "" {
			return &v
		}
		return nil
	}
	return Record{
		IdentityNumber: opt(FieldIdentityNumber),
		Name:           opt(FieldName),
		FatherName:     opt(FieldFatherName),
		Gender:         opt(FieldGender),
		CountryOfStay:  opt(FieldCountryOfStay),
		DateOfBirth:    opt(FieldDateOfBirth),
		DateOfIssue:    opt(FieldDateOfIssue),
		DateOfExpiry:   opt(FieldDateOfExpiry),
	}
}

// Fields returns the record as a field-name-to-value map; absent fields map
// to nil. Callers serializing the record get the same fixed key set either way.
func (r Record) Fields() map[string]*string {
	return map[string]*string{
		FieldIdentityNumber: r.IdentityNumber,
		FieldName:           r.Name,
		FieldFatherName:     r.FatherName,
		FieldGender:         r.Gender,
		FieldCountryOfStay:  r.CountryOfStay,
		FieldDateOfBirth:    r.DateOfBirth,
		FieldDateOfIssue:    r.DateOfIssue,
		FieldDateOfExpiry:   r.DateOfExpiry,
	}
}
