package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Student", "Accuracy", "WPM"}
	rows := [][]string{
		{"ada", "97.50%", "42"},
		{"grace", "8.00%", "7"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Student Accuracy WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "ada       97.50%  42" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "grace      8.00%   7" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Word", "N"}, [][]string{{"日本", "1"}, {"ab", "2"}}, nil)
	if lines[1] != "日本 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab   2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
