package parser

import (
	"reflect"
	"testing"
)

func strv(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func wantField(t *testing.T, name string, got *string, want string) {
	t.Helper()
	if got == nil || *got != want {
		t.Errorf("%s: got %s, want %q", name, strv(got), want)
	}
}

func wantNil(t *testing.T, name string, got *string) {
	t.Helper()
	if got != nil {
		t.Errorf("%s: got %q, want nil", name, *got)
	}
}

func TestExtractLabelledCard(t *testing.T) {
	res := Extract("Name: JOHN SMITH Father: ROBERT SMITH Gender: Male 12345-1234567-1 01/01/1990", nil)

	wantField(t, "name", res.Record.Name, "John Smith")
	wantField(t, "father_name", res.Record.FatherName, "Robert Smith")
	wantField(t, "gender", res.Record.Gender, "Male")
	wantField(t, "identity_number", res.Record.IdentityNumber, "12345-1234567-1")
	wantField(t, "date_of_birth", res.Record.DateOfBirth, "01/01/1990")
	wantNil(t, "date_of_issue", res.Record.DateOfIssue)
	wantNil(t, "date_of_expiry", res.Record.DateOfExpiry)
}

func TestExtractPositionalDates(t *testing.T) {
	res := Extract("some header 12/03/1985 then 01/06/2015 and 01/06/2025 trailing", nil)

	wantField(t, "date_of_birth", res.Record.DateOfBirth, "12/03/1985")
	wantField(t, "date_of_issue", res.Record.DateOfIssue, "01/06/2015")
	wantField(t, "date_of_expiry", res.Record.DateOfExpiry, "01/06/2025")
}

func TestExtractCountryFromBareToken(t *testing.T) {
	res := Extract("PAKISTAN", nil)

	wantField(t, "country_of_stay", res.Record.CountryOfStay, "Pakistan")
	wantNil(t, "name", res.Record.Name)
}

func TestExtractRejectsFourteenDigitNumber(t *testing.T) {
	res := Extract("serial 12345678901234 end", nil)

	wantNil(t, "identity_number", res.Record.IdentityNumber)
}

func TestExtractEmptyInput(t *testing.T) {
	res := Extract("", nil)

	for field, v := range res.Record.Fields() {
		if v != nil {
			t.Errorf("field %s: got %q, want nil", field, *v)
		}
	}
	if res.Confidence != 0 {
		t.Errorf("confidence: got %v, want 0", res.Confidence)
	}
	if res.Filled != 0 {
		t.Errorf("filled: got %d, want 0", res.Filled)
	}
}

func TestExtractIdempotent(t *testing.T) {
	text := "Name: AISHA BIBI Father Name: GHULAM RASOOL Gender: Female\nIdentity Number 61101-9573922-4\nDate of Birth 14/08/1992 Date of Issue 10/01/2020 Date of Expiry 10/01/2030\nPakistan"
	blocks := []string{"Name", "AISHA BIBI", "Father Name", "GHULAM RASOOL"}

	a := Extract(text, blocks)
	b := Extract(text, blocks)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("extraction not idempotent:\nfirst  %+v\nsecond %+v", a, b)
	}
}

func TestExtractFullyLabelledCard(t *testing.T) {
	text := "Pakistan National Identity Card\n" +
		"Name: AISHA BIBI\n" +
		"Father Name: GHULAM RASOOL\n" +
		"Gender: Female Country of Stay: Pakistan\n" +
		"Identity Number 61101-9573922-4\n" +
		"Date of Birth 14/08/1992\n" +
		"Date of Issue 10/01/2020\n" +
		"Date of Expiry 10/01/2030"

	res := Extract(text, nil)

	wantField(t, "name", res.Record.Name, "Aisha Bibi")
	wantField(t, "father_name", res.Record.FatherName, "Ghulam Rasool")
	wantField(t, "gender", res.Record.Gender, "Female")
	wantField(t, "country_of_stay", res.Record.CountryOfStay, "Pakistan")
	wantField(t, "identity_number", res.Record.IdentityNumber, "61101-9573922-4")
	wantField(t, "date_of_birth", res.Record.DateOfBirth, "14/08/1992")
	wantField(t, "date_of_issue", res.Record.DateOfIssue, "10/01/2020")
	wantField(t, "date_of_expiry", res.Record.DateOfExpiry, "10/01/2030")
	if res.Filled != 8 || res.Confidence != 100 {
		t.Errorf("score: got filled=%d confidence=%v, want 8 and 100", res.Filled, res.Confidence)
	}
}

func TestExtractBareGenderInitial(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"male initial", "12345-1234567-1 M 01/01/1990", "Male"},
		{"female initial", "12345-1234567-1 F 01/01/1990", "Female"},
		{"full word still wins", "12345-1234567-1 Female 01/01/1990", "Female"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Extract(tt.text, nil)
			wantField(t, "gender", res.Record.Gender, tt.want)
		})
	}
}

func TestExtractLabelsWithoutSeparatorSpace(t *testing.T) {
	res := Extract("Name:JOHN SMITH Father:ROBERT SMITH Gender: Male", nil)

	wantField(t, "name", res.Record.Name, "John Smith")
	wantField(t, "father_name", res.Record.FatherName, "Robert Smith")
	wantField(t, "gender", res.Record.Gender, "Male")
}

func TestExtractUrduLabelledCard(t *testing.T) {
	text := "شناختی کارڈ نمبر 12345-1234567-1\n" +
		"نام AISHA BIBI\n" +
		"والد GHULAM RASOOL\n" +
		"جنس Female\n" +
		"تاریخ پیدائش 01/01/1990\n" +
		"پاکستان"

	res := Extract(text, nil)

	wantField(t, "identity_number", res.Record.IdentityNumber, "12345-1234567-1")
	wantField(t, "name", res.Record.Name, "Aisha Bibi")
	wantField(t, "father_name", res.Record.FatherName, "Ghulam Rasool")
	wantField(t, "gender", res.Record.Gender, "Female")
	wantField(t, "country_of_stay", res.Record.CountryOfStay, "Pakistan")
	wantField(t, "date_of_birth", res.Record.DateOfBirth, "01/01/1990")
	if res.Filled != 6 {
		t.Errorf("filled: got %d, want 6", res.Filled)
	}
}

func TestExtractConfidenceBounds(t *testing.T) {
	inputs := []string{
		"",
		"PAKISTAN",
		"Name: JOHN SMITH Father: ROBERT SMITH Gender: Male 12345-1234567-1 01/01/1990",
		"garbage ### %%% 123",
	}
	for _, text := range inputs {
		res := Extract(text, nil)
		if res.Confidence < 0 || res.Confidence > 100 {
			t.Errorf("confidence out of range for %q: %v", text, res.Confidence)
		}
		if (res.Filled == 0) != (res.Confidence == 0) {
			t.Errorf("zero-score mismatch for %q: filled=%d confidence=%v", text, res.Filled, res.Confidence)
		}
	}
}
