package tabular

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := "name,email,company\nAlice,alice@example.com,Acme\nBob,bob@example.com,Initech\n"

	table, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := len(table.Headers), 3; got != want {
		t.Fatalf("expected %d headers, got %d", want, got)
	}
	if table.FirstHeader() != "name" {
		t.Errorf("expected first header 'name', got '%s'", table.FirstHeader())
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	// Row order must match file order
	if table.Rows[0].Value("name") != "Alice" {
		t.Errorf("expected first row name 'Alice', got '%s'", table.Rows[0].Value("name"))
	}
	if table.Rows[1].Value("name") != "Bob" {
		t.Errorf("expected second row name 'Bob', got '%s'", table.Rows[1].Value("name"))
	}
	if table.Rows[0].Value("company") != "Acme" {
		t.Errorf("expected company 'Acme', got '%s'", table.Rows[0].Value("company"))
	}
}

func TestParseShortAndLongRecords(t *testing.T) {
	input := "name,email\nAlice\nBob,bob@example.com,extra\n"

	table, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	// Short record pads missing columns with empty strings
	if table.Rows[0].Value("email") != "" {
		t.Errorf("expected empty email for short record, got '%s'", table.Rows[0].Value("email"))
	}

	// Long record drops the unheadered value
	if table.Rows[1].Value("email") != "bob@example.com" {
		t.Errorf("expected email 'bob@example.com', got '%s'", table.Rows[1].Value("email"))
	}
}

func TestParseMissingColumnLookup(t *testing.T) {
	table, err := Parse(strings.NewReader("name\nBob\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Absent column resolves to empty string, never an error
	if got := table.Rows[0].Value("email"); got != "" {
		t.Errorf("expected empty value for missing column, got '%s'", got)
	}
}

func TestParseQuotedValues(t *testing.T) {
	input := "name,address\n\"Smith, Jane\",\"12 Main St\"\n"

	table, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := table.Rows[0].Value("name"); got != "Smith, Jane" {
		t.Errorf("expected quoted value to keep comma, got '%s'", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	table, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("expected no rows, got %d", table.Len())
	}
	if table.FirstHeader() != "" {
		t.Errorf("expected empty first header, got '%s'", table.FirstHeader())
	}
}

func TestParseHeaderOnly(t *testing.T) {
	table, err := Parse(strings.NewReader("name,email\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Headers) != 2 {
		t.Errorf("expected 2 headers, got %d", len(table.Headers))
	}
	if table.Len() != 0 {
		t.Errorf("expected no rows, got %d", table.Len())
	}
}

func TestParseBytes(t *testing.T) {
	table, err := ParseBytes([]byte("id,name\n1,Alice\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", table.Len())
	}
	if table.Rows[0].Value("id") != "1" {
		t.Errorf("expected id '1', got '%s'", table.Rows[0].Value("id"))
	}
}

func TestParseMalformedQuoting(t *testing.T) {
	if _, err := Parse(strings.NewReader("name\n\"unterminated\n")); err == nil {
		t.Error("expected error for malformed quoting")
	}
}
