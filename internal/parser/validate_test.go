package parser

import (
	"strings"
	"testing"
)

func TestFormatIdentityNumberRoundTrip(t *testing.T) {
	digits := []string{"1234512345671", "0000000000000", "9999999999999", "6110195739224"}
	for _, d := range digits {
		formatted := FormatIdentityNumber(d)
		if stripped := strings.ReplaceAll(formatted, "-", ""); stripped != d {
			t.Errorf("round trip failed: %q -> %q -> %q", d, formatted, stripped)
		}
	}
	if got := FormatIdentityNumber("1234512345671"); got != "12345-1234567-1" {
		t.Errorf("grouping: got %q, want 12345-1234567-1", got)
	}
}

func TestIsLikelyName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain name", "John Smith", true},
		{"single word", "Aisha", true},
		{"urdu-latin mix", "Muhammad Akram", true},
		{"too short", "J", false},
		{"empty", "   ", false},
		{"all digits", "123456", false},
		{"no letters", "## %% --", false},
		{"boilerplate header", "ISLAMIC REPUBLIC OF PAKISTAN", false},
		{"card header", "NATIONAL IDENTITY CARD", false},
		{"label fragment", "Date of Birth", false},
		{"gender keyword", "Gender", false},
		{"mostly digits", "A1 2345 678", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLikelyName(tt.in); got != tt.want {
				t.Errorf("isLikelyName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanupNullsImplausibleValues(t *testing.T) {
	ec := newExtraction()
	ec.fields[FieldName] = "X"
	ec.fields[FieldFatherName] = strings.Repeat("Abc ", 20)
	ec.fields[FieldIdentityNumber] = "12345-1234567"
	ec.fields[FieldGender] = "Male"
	ec.fields[FieldDateOfBirth] = "01/01/1990"

	cleanup(ec)

	if ec.has(FieldName) || ec.has(FieldFatherName) || ec.has(FieldIdentityNumber) {
		t.Errorf("cleanup kept implausible values: %+v", ec.fields)
	}
	if ec.get(FieldGender) != "Male" || ec.get(FieldDateOfBirth) != "01/01/1990" {
		t.Errorf("cleanup altered valid values: %+v", ec.fields)
	}
}

func TestCleanupNeverRewrites(t *testing.T) {
	ec := newExtraction()
	ec.setIfEmpty(FieldName, "JOHN SMITH")
	before := ec.get(FieldName)

	cleanup(ec)

	if got := ec.get(FieldName); got != before {
		t.Errorf("cleanup rewrote %q to %q", before, got)
	}
}

func TestSetIfEmptyFirstWriterWins(t *testing.T) {
	ec := newExtraction()
	ec.setIfEmpty(FieldName, "JOHN SMITH")
	ec.setIfEmpty(FieldName, "SOMEONE ELSE")

	if got := ec.get(FieldName); got != "John Smith" {
		t.Errorf("got %q, want John Smith", got)
	}
}
