package catalog

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBookUnmarshal_PrefersMaterialID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"material id", `{"libreriaMaterialId":"m-1","titulo":"A"}`, "m-1"},
		{"plain id", `{"id":"p-1","titulo":"A"}`, "p-1"},
		{"both", `{"libreriaMaterialId":"m-1","id":"p-1"}`, "m-1"},
		{"blank material id", `{"libreriaMaterialId":"  ","id":"p-1"}`, "p-1"},
		{"neither", `{"titulo":"A"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Book
			if err := json.Unmarshal([]byte(tt.in), &b); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if b.ID != tt.want {
				t.Fatalf("ID = %q, want %q", b.ID, tt.want)
			}
		})
	}
}

func TestBookMarshal_UsesServiceKeys(t *testing.T) {
	out, err := json.Marshal(Book{ID: "x", Title: "T", PublishedAt: "2020-01-01", AuthorRef: "a"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if raw["libreriaMaterialId"] != "x" || raw["titulo"] != "T" || raw["fechaPublicacion"] != "2020-01-01" || raw["autorLibro"] != "a" {
		t.Fatalf("marshalled = %v, want service keys", raw)
	}
	if _, ok := raw["id"]; ok {
		t.Fatalf("marshalled = %v, should not emit id", raw)
	}
}

func TestParseTimestamp_Layouts(t *testing.T) {
	for _, value := range []string{
		"2024-03-05T10:11:12Z",
		"2024-03-05T10:11:12.123Z",
		"2024-03-05T10:11:12.1234567",
		"2024-03-05T10:11:12",
		"2024-03-05T10:11",
		"2024-03-05",
	} {
		got, ok := ParseTimestamp(value)
		if !ok {
			t.Fatalf("ParseTimestamp(%q) failed", value)
		}
		if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 {
			t.Fatalf("ParseTimestamp(%q) = %v, want 2024-03-05", value, got)
		}
	}
	if _, ok := ParseTimestamp("yesterday"); ok {
		t.Fatalf("ParseTimestamp(yesterday) should fail")
	}
	if _, ok := ParseTimestamp(" "); ok {
		t.Fatalf("ParseTimestamp(blank) should fail")
	}
}

func TestFormatTimestamp_UTCMillis(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	got := FormatTimestamp(time.Date(2024, 1, 2, 22, 30, 0, 0, loc))
	if got != "2024-01-03T03:30:00.000Z" {
		t.Fatalf("FormatTimestamp = %q, want 2024-01-03T03:30:00.000Z", got)
	}
}

func TestAuthorFullName(t *testing.T) {
	if got := (Author{FirstName: "Isabel", LastName: "Allende"}).FullName(); got != "Isabel Allende" {
		t.Fatalf("FullName = %q", got)
	}
	if got := (Author{FirstName: "Isabel"}).FullName(); got != "Isabel" {
		t.Fatalf("FullName = %q", got)
	}
}
