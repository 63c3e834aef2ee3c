package parser

import "testing"

func TestExtractByContextSameLine(t *testing.T) {
	ec := newExtraction()
	extractByContext(ec, "Name: AISHA BIBI\nFather Name: GHULAM RASOOL")

	if got := ec.get(FieldName); got != "Aisha Bibi" {
		t.Errorf("name: got %q, want Aisha Bibi", got)
	}
	if got := ec.get(FieldFatherName); got != "Ghulam Rasool" {
		t.Errorf("father_name: got %q, want Ghulam Rasool", got)
	}
}

func TestExtractByContextNextLine(t *testing.T) {
	ec := newExtraction()
	extractByContext(ec, "Name\nAISHA BIBI\nFather Name\nGHULAM RASOOL")

	if got := ec.get(FieldName); got != "Aisha Bibi" {
		t.Errorf("name: got %q, want Aisha Bibi", got)
	}
	if got := ec.get(FieldFatherName); got != "Ghulam Rasool" {
		t.Errorf("father_name: got %q, want Ghulam Rasool", got)
	}
}

func TestExtractByContextIgnoresFatherLineForName(t *testing.T) {
	ec := newExtraction()
	extractByContext(ec, "Father Name: GHULAM RASOOL")

	if ec.has(FieldName) {
		t.Errorf("name filled from father line: %q", ec.get(FieldName))
	}
	if got := ec.get(FieldFatherName); got != "Ghulam Rasool" {
		t.Errorf("father_name: got %q, want Ghulam Rasool", got)
	}
}

func TestExtractByContextSkipsInvalidNextLine(t *testing.T) {
	ec := newExtraction()
	extractByContext(ec, "Name\n12345-1234567-1\nmore text")

	if ec.has(FieldName) {
		t.Errorf("name filled from numeric line: %q", ec.get(FieldName))
	}
}
