package extractor

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount probes the uploaded document for its page count. The result is
// informational (logs and history); uploads are accepted on declared media
// type alone, so a probe failure never rejects a request.
func PageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), nil)
}
