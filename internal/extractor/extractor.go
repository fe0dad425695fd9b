// Package extractor performs the schema-constrained model call that turns
// an uploaded PDF into a structured table set.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fintab/fintab/internal/tables"
)

// Config holds the resolved settings for the upstream call.
type Config struct {
	APIKey          string
	BaseURL         string // Optional API base URL override
	Model           string
	MaxOutputTokens int64
	Temperature     float64
	TopP            float64
	Store           bool
	Timeout         time.Duration
	HTTPClient      *http.Client // Optional (tests)
}

// Client calls the model API. A single request failure is a single
// extraction failure: the transport is configured with retries disabled.
type Client struct {
	api    openai.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a Client from the given config.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		cfg:    cfg,
		logger: logger,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Result is a successful extraction: the decoded table set plus call
// metadata for logging and history.
type Result struct {
	Set          tables.Set
	Raw          json.RawMessage
	Model        string
	InputTokens  int64
	OutputTokens int64
	Duration     time.Duration
}

// Extract sends the document to the model and returns the decoded table
// set. The model's output is validated against the request schema locally
// before decoding; the requested schema shapes the request but does not
// guarantee the response, so conformance is never assumed.
func (c *Client) Extract(ctx context.Context, req Request) (*Result, error) {
	params := responses.ResponseNewParams{
		Model:           shared.ResponsesModel(c.cfg.Model),
		MaxOutputTokens: openai.Int(c.cfg.MaxOutputTokens),
		Temperature:     openai.Float(c.cfg.Temperature),
		TopP:            openai.Float(c.cfg.TopP),
		Store:           openai.Bool(c.cfg.Store),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleSystem,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: responses.ResponseInputMessageContentListParam{
								{OfInputText: &responses.ResponseInputTextParam{Text: req.SystemPrompt}},
							},
						},
					},
				},
				{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: responses.ResponseInputMessageContentListParam{
								{OfInputText: &responses.ResponseInputTextParam{Text: req.UserPrompt}},
								{OfInputFile: &responses.ResponseInputFileParam{
									Filename: openai.String(req.Filename),
									FileData: openai.String(req.DataURI()),
								}},
							},
						},
					},
				},
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
	}

	c.logger.Info("extract.call",
		"model", c.cfg.Model,
		"filename", req.Filename,
		"size_bytes", len(req.Data))

	start := time.Now()
	resp, err := c.api.Responses.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	if resp.Status == responses.ResponseStatusFailed {
		if resp.Error.Message != "" {
			return nil, &UpstreamError{Err: fmt.Errorf("response failed: %s", resp.Error.Message)}
		}
		return nil, &UpstreamError{Err: fmt.Errorf("response failed")}
	}

	// A refusal arrives as a content item, usually on a completed response.
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "refusal" && content.Refusal != "" {
				return nil, &RefusalError{Message: content.Refusal}
			}
		}
	}

	if resp.Status == responses.ResponseStatusIncomplete {
		reason := resp.IncompleteDetails.Reason
		if reason == "" {
			reason = "unknown"
		}
		return nil, &SchemaMismatchError{Reason: fmt.Sprintf("response incomplete (%s)", reason)}
	}
	if resp.Status != responses.ResponseStatusCompleted {
		return nil, &UpstreamError{Err: fmt.Errorf("unexpected response status %q", resp.Status)}
	}

	set, raw, err := decodeOutput(resp.OutputText(), req.Schema)
	if err != nil {
		return nil, err
	}

	c.logger.Info("extract.ok",
		"model", string(resp.Model),
		"tables", len(set.Tables),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"duration_ms", duration.Milliseconds())

	return &Result{
		Set:          set,
		Raw:          raw,
		Model:        string(resp.Model),
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		Duration:     duration,
	}, nil
}

// mapUpstreamError classifies a failed API call, keeping the upstream
// status when the failure was an API error response.
func mapUpstreamError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{Status: apiErr.StatusCode, Err: err}
	}
	return &UpstreamError{Err: err}
}

// decodeOutput validates the model's text output against the schema and
// decodes it into a Set.
func decodeOutput(text string, schema map[string]any) (tables.Set, json.RawMessage, error) {
	if text == "" {
		return tables.Set{}, nil, &SchemaMismatchError{Reason: "empty output"}
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return tables.Set{}, nil, &SchemaMismatchError{Reason: "output is not valid JSON", Err: err}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return tables.Set{}, nil, fmt.Errorf("failed to compile output schema: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return tables.Set{}, nil, &SchemaMismatchError{Reason: "validation failed", Err: err}
	}

	var set tables.Set
	if err := json.Unmarshal([]byte(text), &set); err != nil {
		return tables.Set{}, nil, &SchemaMismatchError{Reason: "decode failed", Err: err}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return tables.Set{}, nil, fmt.Errorf("failed to normalize output: %w", err)
	}
	return set, raw, nil
}

// compileSchema compiles the request schema for local validation.
func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return compiler.Compile("schema.json")
}
