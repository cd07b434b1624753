package sections

import (
	"reflect"
	"testing"
)

func TestExtractContact(t *testing.T) {
	t.Parallel()

	text := `Jane Doe
jane.doe@example.com, JANE.DOE@example.com
Phone: +1 (555) 123-4567 or 555.987.6543
linkedin.com/in/janedoe, https://github.com/janedoe.`

	got := ExtractContact(text)

	if want := []string{"jane.doe@example.com"}; !reflect.DeepEqual(got.Emails, want) {
		t.Fatalf("expected emails %v, got %v", want, got.Emails)
	}

	if want := []string{"+1 (555) 123-4567", "555.987.6543"}; !reflect.DeepEqual(got.Phones, want) {
		t.Fatalf("expected phones %v, got %v", want, got.Phones)
	}

	if want := []string{"linkedin.com/in/janedoe", "https://github.com/janedoe"}; !reflect.DeepEqual(got.Links, want) {
		t.Fatalf("expected links %v, got %v", want, got.Links)
	}
}

func TestExtractContactPhoneFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		expect []string
	}{
		{text: "call +15551234567 today", expect: []string{"+15551234567"}},
		{text: "call 5551234567", expect: []string{"5551234567"}},
		{text: "(555) 123-4567 and 555-123-4567", expect: []string{"(555) 123-4567", "555-123-4567"}},
		{text: "+15551234567 or +15551234567", expect: []string{"+15551234567"}},
	}

	for _, tt := range tests {
		if got := ExtractContact(tt.text).Phones; !reflect.DeepEqual(got, tt.expect) {
			t.Fatalf("%q: expected phones %v, got %v", tt.text, tt.expect, got)
		}
	}
}

func TestExtractContactEmpty(t *testing.T) {
	t.Parallel()

	if got := ExtractContact("no contact here"); !got.IsEmpty() {
		t.Fatalf("expected empty contact, got %+v", got)
	}
}
