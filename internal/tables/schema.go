package tables

// SchemaName is the name the structured output format is registered under.
const SchemaName = "financial_tables"

// OutputSchema returns the JSON schema the model's response must conform to.
// The same schema is sent with the request (strict structured output) and
// used to validate the response locally before decoding into a Set.
//
// The equal-length rule for column values is stated in the description but
// cannot be expressed in the schema itself, so conformance to it is checked
// separately during reconciliation.
func OutputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tables": map[string]any{
				"type":        "array",
				"description": "All financial tables found in the document, in order of appearance.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Short identifier for the table, e.g. 'Income_Statement'.",
						},
						"columns": map[string]any{
							"type":        "array",
							"description": "Table columns in left-to-right order. Every column must have the same number of values so rows stay aligned.",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name": map[string]any{
										"type":        "string",
										"description": "Column header label.",
									},
									"values": map[string]any{
										"type":        "array",
										"description": "Cell values top to bottom. Use null for empty cells.",
										"items": map[string]any{
											"type": []string{"string", "number", "null"},
										},
									},
								},
								"required":             []string{"name", "values"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []string{"name", "columns"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"tables"},
		"additionalProperties": false,
	}
}
