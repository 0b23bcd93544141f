package entities

import "testing"

func TestRawRow_Number(t *testing.T) {
	row := RawRow{
		"plain":     "42",
		"decimal":   "3.5",
		"thousands": "1,200",
		"spaced":    " 1 200 ",
		"empty":     "",
		"blank":     "   ",
		"text":      "n/a",
		"negative":  "-4",
	}

	testCases := []struct {
		name     string
		column   string
		expected float64
		ok       bool
	}{
		{"plain integer", "plain", 42, true},
		{"decimal", "decimal", 3.5, true},
		{"thousands separator", "thousands", 1200, true},
		{"embedded spaces", "spaced", 1200, true},
		{"empty cell", "empty", 0, false},
		{"whitespace cell", "blank", 0, false},
		{"non-numeric text", "text", 0, false},
		{"absent column", "missing", 0, false},
		{"negative number", "negative", -4, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, ok := row.Number(tc.column)
			if ok != tc.ok {
				t.Fatalf("Number(%q) ok = %v, expected %v", tc.column, ok, tc.ok)
			}
			if ok && value != tc.expected {
				t.Errorf("Number(%q) = %v, expected %v", tc.column, value, tc.expected)
			}
		})
	}
}

func TestRawTable_DayColumns(t *testing.T) {
	table := NewRawTable(
		[]string{"codigo", "Dia_1", "nombre", "Dia_2", "Dia_10", "Diario"},
		nil,
	)

	dayColumns := table.DayColumns("Dia_")
	expected := []string{"Dia_1", "Dia_2", "Dia_10"}
	if len(dayColumns) != len(expected) {
		t.Fatalf("Expected %d day columns, got %d: %v", len(expected), len(dayColumns), dayColumns)
	}
	for i, column := range expected {
		if dayColumns[i] != column {
			t.Errorf("Day column %d = %s, expected %s (header order must be preserved)", i, dayColumns[i], column)
		}
	}
}

func TestRawTable_HasColumn(t *testing.T) {
	table := NewRawTable([]string{"codigo", "nombre"}, nil)

	if !table.HasColumn("codigo") {
		t.Errorf("Expected HasColumn(codigo) to be true")
	}
	if table.HasColumn("Dia_1") {
		t.Errorf("Expected HasColumn(Dia_1) to be false")
	}
}

func TestRawRow_CloneIndependence(t *testing.T) {
	row := RawRow{"codigo": "P001"}
	clone := row.Clone()
	clone["codigo"] = "P999"

	if row["codigo"] != "P001" {
		t.Errorf("Clone mutation leaked into original row")
	}
}
