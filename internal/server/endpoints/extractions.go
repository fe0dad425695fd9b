package endpoints

import (
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fintab/fintab/internal/api"
	"github.com/fintab/fintab/internal/history"
	"github.com/fintab/fintab/internal/svcctx"
)

// ExtractionsResponse is the response for the extraction history list.
type ExtractionsResponse struct {
	Extractions []history.Record `json:"extractions"`
	Count       int              `json:"count"`
}

// ListExtractionsEndpoint handles GET /api/extractions.
type ListExtractionsEndpoint struct{}

var _ api.Endpoint = (*ListExtractionsEndpoint)(nil)

func (e *ListExtractionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/extractions", e.handler
}

func (e *ListExtractionsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List recent extractions
//	@Description	Returns extraction history records, newest first
//	@Tags			extractions
//	@Produce		json
//	@Param			limit	query	int	false	"Maximum number of records to return"
//	@Success		200	{object}	ExtractionsResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/extractions [get]
func (e *ListExtractionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	hist := svcctx.HistoryFrom(r.Context())
	if hist == nil {
		writeError(w, http.StatusServiceUnavailable, "history not initialized")
		return
	}

	recs := hist.List()
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		if limit < len(recs) {
			recs = recs[:limit]
		}
	}

	writeJSON(w, http.StatusOK, ExtractionsResponse{
		Extractions: recs,
		Count:       len(recs),
	})
}

func (e *ListExtractionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent extractions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/extractions"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			var resp ExtractionsResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to return")
	return cmd
}

// GetExtractionEndpoint handles GET /api/extractions/{id}.
type GetExtractionEndpoint struct{}

var _ api.Endpoint = (*GetExtractionEndpoint)(nil)

func (e *GetExtractionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/extractions/{id}", e.handler
}

func (e *GetExtractionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get one extraction record
//	@Description	Returns a single extraction history record by ID
//	@Tags			extractions
//	@Produce		json
//	@Param			id	path	string	true	"Extraction ID"
//	@Success		200	{object}	history.Record
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/extractions/{id} [get]
func (e *GetExtractionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	hist := svcctx.HistoryFrom(r.Context())
	if hist == nil {
		writeError(w, http.StatusServiceUnavailable, "history not initialized")
		return
	}

	rec, ok := hist.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "extraction not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (e *GetExtractionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get one extraction record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var rec history.Record
			if err := client.Get(cmd.Context(), "/api/extractions/"+args[0], &rec); err != nil {
				return err
			}
			return api.Output(rec)
		},
	}
}
