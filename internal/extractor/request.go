package extractor

import (
	"encoding/base64"

	"github.com/fintab/fintab/internal/prompts/financial"
	"github.com/fintab/fintab/internal/tables"
)

// Request is the outgoing extraction payload: the uploaded document plus
// the fixed instructions and output schema. Built once per upload and not
// modified afterwards.
type Request struct {
	Filename     string
	Data         []byte
	SystemPrompt string
	UserPrompt   string
	SchemaName   string
	Schema       map[string]any
}

// NewRequest builds a Request for the given document.
func NewRequest(filename string, data []byte) Request {
	return Request{
		Filename:     filename,
		Data:         data,
		SystemPrompt: financial.SystemPrompt,
		UserPrompt:   financial.UserPrompt,
		SchemaName:   tables.SchemaName,
		Schema:       tables.OutputSchema(),
	}
}

// DataURI returns the document embedded as a base64 data URI.
func (r Request) DataURI() string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(r.Data)
}
