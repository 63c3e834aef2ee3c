package parser

import "testing"

func TestExtractByPositionLabelAndValueInOneBlock(t *testing.T) {
	ec := newExtraction()
	extractByPosition(ec, []string{"Name: AISHA BIBI", "Father Name: GHULAM RASOOL"})

	if got := ec.get(FieldName); got != "Aisha Bibi" {
		t.Errorf("name: got %q, want Aisha Bibi", got)
	}
	if got := ec.get(FieldFatherName); got != "Ghulam Rasool" {
		t.Errorf("father_name: got %q, want Ghulam Rasool", got)
	}
}

func TestExtractByPositionLabelThenValueBlock(t *testing.T) {
	ec := newExtraction()
	extractByPosition(ec, []string{"Name", "AISHA BIBI", "Father Name", "GHULAM RASOOL"})

	if got := ec.get(FieldName); got != "Aisha Bibi" {
		t.Errorf("name: got %q, want Aisha Bibi", got)
	}
	if got := ec.get(FieldFatherName); got != "Ghulam Rasool" {
		t.Errorf("father_name: got %q, want Ghulam Rasool", got)
	}
}

func TestExtractByPositionRejectsInvalidNeighbour(t *testing.T) {
	ec := newExtraction()
	extractByPosition(ec, []string{"Name", "12345-1234567-1"})

	if ec.has(FieldName) {
		t.Errorf("name filled from numeric block: %q", ec.get(FieldName))
	}
}

func TestExtractByPositionNoBlocks(t *testing.T) {
	ec := newExtraction()
	extractByPosition(ec, nil)

	if len(ec.fields) != 0 {
		t.Errorf("extraction wrote fields without blocks: %+v", ec.fields)
	}
}

func TestExtractByPositionRespectsFilledFields(t *testing.T) {
	ec := newExtraction()
	ec.setIfEmpty(FieldName, "Existing Person")
	extractByPosition(ec, []string{"Name", "AISHA BIBI"})

	if got := ec.get(FieldName); got != "Existing Person" {
		t.Errorf("name overwritten: got %q", got)
	}
}
