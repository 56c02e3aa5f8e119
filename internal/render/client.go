package render

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"lettergen/internal/document"
)

// Invoker is the subset of the Lambda client the renderer uses.
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Error marks a failed render of one document. It fails only that item.
type Error struct {
	DocumentName document.Name
	Err          error
}

func (e Error) Error() string {
	return fmt.Sprintf("render %s: %v", string(e.DocumentName), e.Err)
}

func (e Error) Unwrap() error { return e.Err }

// Client invokes the external document renderer.
type Client struct {
	invoker  Invoker
	function string
}

// New builds a renderer client for the named Lambda function.
func New(ctx context.Context, region, function string) (*Client, error) {
	if strings.TrimSpace(function) == "" {
		return nil, fmt.Errorf("renderer function name is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Client{invoker: lambda.NewFromConfig(cfg), function: function}, nil
}

// NewWithInvoker builds a client around an existing invoker, used by tests.
func NewWithInvoker(invoker Invoker, function string) *Client {
	return &Client{invoker: invoker, function: function}
}

type renderRequest struct {
	DocumentName string            `json:"documentName"`
	DocumentData map[string]string `json:"documentData"`
}

// Render invokes the renderer for the model and returns the PDF bytes.
// The response payload is a JSON string carrying the base64-encoded PDF.
func (c *Client) Render(ctx context.Context, model document.Model) ([]byte, error) {
	payload, err := json.Marshal(renderRequest{
		DocumentName: string(model.Name),
		DocumentData: model.Content,
	})
	if err != nil {
		return nil, Error{DocumentName: model.Name, Err: fmt.Errorf("encode request: %w", err)}
	}

	out, err := c.invoker.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: &c.function,
		Payload:      payload,
	})
	if err != nil {
		return nil, Error{DocumentName: model.Name, Err: err}
	}
	if out.FunctionError != nil {
		return nil, Error{DocumentName: model.Name, Err: fmt.Errorf("renderer reported %s: %s", *out.FunctionError, strings.TrimSpace(string(out.Payload)))}
	}

	var encoded string
	if err := json.Unmarshal(out.Payload, &encoded); err != nil {
		return nil, Error{DocumentName: model.Name, Err: fmt.Errorf("decode response payload: %w", err)}
	}

	pdf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, Error{DocumentName: model.Name, Err: fmt.Errorf("decode pdf: %w", err)}
	}
	if !isPDF(pdf) {
		return nil, Error{DocumentName: model.Name, Err: fmt.Errorf("renderer returned a non-pdf payload")}
	}

	return pdf, nil
}

func isPDF(b []byte) bool {
	return len(b) > 4 && string(b[:5]) == "%PDF-"
}
