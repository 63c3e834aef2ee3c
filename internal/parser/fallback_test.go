package parser

import "testing"

func TestFallbackDatesPositional(t *testing.T) {
	ec := newExtraction()
	fallbackDates(ec, "14/08/1992 foo 10.01.2020 bar 10-01-2030")

	if ec.get(FieldDateOfBirth) != "14/08/1992" {
		t.Errorf("birth: got %q", ec.get(FieldDateOfBirth))
	}
	if ec.get(FieldDateOfIssue) != "10.01.2020" {
		t.Errorf("issue: got %q", ec.get(FieldDateOfIssue))
	}
	if ec.get(FieldDateOfExpiry) != "10-01-2030" {
		t.Errorf("expiry: got %q", ec.get(FieldDateOfExpiry))
	}
}

func TestFallbackDatesSkipFilledSlots(t *testing.T) {
	ec := newExtraction()
	ec.setIfEmpty(FieldDateOfBirth, "14/08/1992")
	fallbackDates(ec, "10/01/2020 and 10/01/2030 and 14/08/1992")

	if ec.get(FieldDateOfBirth) != "14/08/1992" {
		t.Errorf("birth overwritten: %q", ec.get(FieldDateOfBirth))
	}
	if ec.get(FieldDateOfIssue) != "10/01/2020" {
		t.Errorf("issue: got %q", ec.get(FieldDateOfIssue))
	}
	if ec.get(FieldDateOfExpiry) != "10/01/2030" {
		t.Errorf("expiry: got %q", ec.get(FieldDateOfExpiry))
	}
}

func TestFallbackDatesDeduplicates(t *testing.T) {
	ec := newExtraction()
	fallbackDates(ec, "14/08/1992 14/08/1992 10/01/2020")

	if ec.get(FieldDateOfIssue) != "10/01/2020" {
		t.Errorf("duplicate consumed a slot: issue=%q", ec.get(FieldDateOfIssue))
	}
	if ec.has(FieldDateOfExpiry) {
		t.Errorf("expiry filled from exhausted pool: %q", ec.get(FieldDateOfExpiry))
	}
}

func TestFallbackNameFromTokens(t *testing.T) {
	ec := newExtraction()
	fallbackName(ec, "something Muhammad Akram Khan lowercase Pakistan trailing")

	if got := ec.get(FieldName); got != "Muhammad Akram Khan" {
		t.Errorf("name: got %q, want Muhammad Akram Khan", got)
	}
}

func TestFallbackNameSkipsStopwords(t *testing.T) {
	ec := newExtraction()
	fallbackName(ec, "Gender Country Pakistan Card National")

	if ec.has(FieldName) {
		t.Errorf("name filled from stoplist tokens: %q", ec.get(FieldName))
	}
}

func TestFallbackFatherNameAfterNameRun(t *testing.T) {
	ec := newExtraction()
	ec.setIfEmpty(FieldName, "Muhammad Akram")
	fallbackFatherName(ec, "header Muhammad Akram Ghulam Rasool 123 rest")

	if got := ec.get(FieldFatherName); got != "Ghulam Rasool" {
		t.Errorf("father_name: got %q, want Ghulam Rasool", got)
	}
}

func TestFallbackFatherNameRequiresName(t *testing.T) {
	ec := newExtraction()
	fallbackFatherName(ec, "Muhammad Akram Ghulam Rasool")

	if ec.has(FieldFatherName) {
		t.Errorf("father_name filled without a name: %q", ec.get(FieldFatherName))
	}
}

func TestIsTitleCaseWord(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"Muhammad", true},
		{"Ali", true},
		{"ALI", false},
		{"ali", false},
		{"Al", false},
		{"Abc1", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isTitleCaseWord(tt.tok); got != tt.want {
			t.Errorf("isTitleCaseWord(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}
