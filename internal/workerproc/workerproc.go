package workerproc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"lettergen/internal/document"
	"lettergen/internal/render"
	"lettergen/internal/shared/telemetry"
	"lettergen/internal/storage/object"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	DocumentName document.Name
	VIN          string
	Err          error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process letter request"
	}
	return "process letter request: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// ParseMessage validates and decodes the queue payload. An unsupported
// document name surfaces here so the item fails before any rendering.
func ParseMessage(body string) (document.Request, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return document.Request{}, meta, ErrEmptyBody{Meta: meta}
	}

	req, err := document.DecodeRequest([]byte(body))
	if err != nil {
		return document.Request{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if !req.DocumentName.Supported() {
		return req, meta, document.UnsupportedNameError{Name: req.DocumentName}
	}
	return req, meta, nil
}

// Renderer turns one document model into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, model document.Model) ([]byte, error)
}

// Processor drives one letter request through build, render and upload.
// Within one item the stages are strictly sequential; the upload never
// starts unless the render succeeded, so a failed item leaves no partial
// artifact behind.
type Processor struct {
	Renderer Renderer
	Store    object.Store
}

// Process builds the document model, renders it and uploads the PDF with
// its metadata. Any error fails only this request.
func (p *Processor) Process(ctx context.Context, req document.Request) error {
	model, err := document.Build(req)
	if err != nil {
		return ErrProcess{DocumentName: req.DocumentName, VIN: req.TechRecord.VIN, Err: err}
	}

	pdf, err := p.Renderer.Render(ctx, model)
	if err != nil {
		return ErrProcess{DocumentName: model.Name, VIN: req.TechRecord.VIN, Err: err}
	}

	telemetry.Debug("worker.letter.rendered", map[string]any{
		"document_name": string(model.Name),
		"file_name":     model.FileName,
		"size_bytes":    len(pdf),
		"pages":         render.PageCount(pdf),
	})

	metadata := UploadMetadata(model, len(pdf))
	if _, err := p.Store.Put(ctx, model.FileName+".pdf", "application/pdf", metadata, bytes.NewReader(pdf)); err != nil {
		return ErrProcess{DocumentName: model.Name, VIN: req.TechRecord.VIN, Err: err}
	}

	return nil
}

// UploadMetadata merges the model's own metadata with the fixed storage
// keys the downstream distribution jobs read.
func UploadMetadata(model document.Model, sizeBytes int) map[string]string {
	metadata := make(map[string]string, len(model.MetaData)+4)
	for k, v := range model.MetaData {
		metadata[k] = v
	}
	metadata["cert-type"] = string(model.Name)
	metadata["file-format"] = "pdf"
	metadata["file-size"] = strconv.Itoa(sizeBytes)
	shouldEmail := "false"
	if strings.TrimSpace(model.MetaData[document.MetaEmail]) != "" {
		shouldEmail = "true"
	}
	metadata["should-email-certificate"] = shouldEmail
	return metadata
}

// HandleMessage parses one queue payload and processes it end to end.
func HandleMessage(ctx context.Context, p *Processor, body string) error {
	req, _, err := ParseMessage(body)
	if err != nil {
		return err
	}
	return p.Process(ctx, req)
}
