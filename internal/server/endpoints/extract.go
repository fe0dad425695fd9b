package endpoints

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fintab/fintab/internal/api"
	"github.com/fintab/fintab/internal/extractor"
	"github.com/fintab/fintab/internal/pipeline"
	"github.com/fintab/fintab/internal/svcctx"
)

// ExtractResponse is the response for a processed upload.
type ExtractResponse struct {
	ID               string   `json:"id"`
	Filename         string   `json:"filename"`
	Status           string   `json:"status"`
	TablesHTML       []string `json:"tables_html"`
	SpreadsheetURL   *string  `json:"spreadsheet_url"`
	TablesReconciled int      `json:"tables_reconciled"`
	TablesSkipped    int      `json:"tables_skipped"`
}

// ExtractEndpoint handles POST /api/extract with a multipart PDF upload.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Extract financial tables from a PDF
//	@Description	Uploads a PDF, extracts financial tables with the model, and returns rendered HTML plus a spreadsheet link
//	@Tags			extract
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"PDF document"
//	@Success		200	{object}	ExtractResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/api/extract [post]
func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form with 100MB max memory
	const maxMemory = 100 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	pl := svcctx.PipelineFrom(r.Context())
	if pl == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	res, err := pl.Process(r.Context(), pipeline.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	resp := ExtractResponse{
		ID:               res.Record.ID,
		Filename:         res.Record.Filename,
		Status:           res.Record.Status,
		TablesHTML:       res.TablesHTML,
		TablesReconciled: res.Record.TablesReconciled,
		TablesSkipped:    res.Record.TablesSkipped,
	}
	if res.SpreadsheetURL != "" {
		resp.SpreadsheetURL = &res.SpreadsheetURL
	}
	writeJSON(w, http.StatusOK, resp)
}

// errorStatus maps extraction errors to HTTP status codes. This is the
// single place pipeline errors become HTTP responses; schema mismatches,
// storage failures, and anything unclassified fall through to 500.
func errorStatus(err error) int {
	var refusal *extractor.RefusalError
	var upstream *extractor.UpstreamError

	switch {
	case errors.Is(err, pipeline.ErrInvalidInputType):
		return http.StatusBadRequest
	case errors.As(err, &refusal):
		return http.StatusBadRequest
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract financial tables from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			// The server trusts the declared type, so derive it from the
			// extension the same way a browser would.
			contentType := mime.TypeByExtension(filepath.Ext(path))
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			client := api.NewClient(getServerURL())
			var resp ExtractResponse
			err = client.Upload(cmd.Context(), "/api/extract", "file", filepath.Base(path), contentType, f, &resp)
			if err != nil {
				return err
			}

			fmt.Printf("Extracted %d table(s) from %s\n", resp.TablesReconciled, resp.Filename)
			if resp.TablesSkipped > 0 {
				fmt.Printf("Skipped %d misaligned table(s)\n", resp.TablesSkipped)
			}
			if resp.SpreadsheetURL != nil {
				fmt.Printf("Spreadsheet: %s%s\n", getServerURL(), *resp.SpreadsheetURL)
			}
			return nil
		},
	}
}
