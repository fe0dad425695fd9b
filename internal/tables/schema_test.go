package tables

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func compileOutputSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()

	raw, err := json.Marshal(OutputSchema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		t.Fatalf("add schema resource: %v", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	return schema
}

func TestOutputSchema_AcceptsConformingPayload(t *testing.T) {
	schema := compileOutputSchema(t)

	payload := `{
		"tables": [
			{
				"name": "Balance_Sheet",
				"columns": [
					{"name": "Item", "values": ["Cash", "Debt"]},
					{"name": "2023", "values": [1500, null]}
				]
			},
			{"name": "Empty", "columns": []}
		]
	}`

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if err := schema.Validate(doc); err != nil {
		t.Errorf("conforming payload rejected: %v", err)
	}
}

func TestOutputSchema_RejectsNonConformingPayloads(t *testing.T) {
	schema := compileOutputSchema(t)

	tests := []struct {
		name    string
		payload string
	}{
		{"missing tables", `{}`},
		{"tables not array", `{"tables": "nope"}`},
		{"boolean cell value", `{"tables":[{"name":"T","columns":[{"name":"C","values":[true]}]}]}`},
		{"object cell value", `{"tables":[{"name":"T","columns":[{"name":"C","values":[{"x":1}]}]}]}`},
		{"column missing values", `{"tables":[{"name":"T","columns":[{"name":"C"}]}]}`},
		{"table missing name", `{"tables":[{"columns":[]}]}`},
		{"extra property", `{"tables":[],"extra":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc any
			if err := json.Unmarshal([]byte(tt.payload), &doc); err != nil {
				t.Fatalf("unmarshal payload: %v", err)
			}
			if err := schema.Validate(doc); err == nil {
				t.Errorf("expected validation failure for %s", tt.payload)
			}
		})
	}
}
