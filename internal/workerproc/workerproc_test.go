package workerproc

import (
	"context"
	"errors"
	"io"
	"testing"

	"lettergen/internal/document"
	"lettergen/internal/techrecord"
)

type fakeRenderer struct {
	pdf []byte
	err error
}

func (f fakeRenderer) Render(ctx context.Context, model document.Model) ([]byte, error) {
	_ = ctx
	_ = model
	return f.pdf, f.err
}

type fakeStore struct {
	fileName string
	metadata map[string]string
	puts     int
	err      error
}

func (f *fakeStore) Put(ctx context.Context, fileName, contentType string, metadata map[string]string, r io.Reader) (int64, error) {
	_ = ctx
	_ = contentType
	f.puts++
	f.fileName = fileName
	f.metadata = metadata
	n, _ := io.Copy(io.Discard, r)
	return n, f.err
}

func validBody(t *testing.T) string {
	t.Helper()
	payload, err := document.EncodeRequest(document.Request{
		DocumentName: document.NameTrailerIntoService,
		TechRecord: techrecord.Record{
			VehicleType:        techrecord.VehicleTypeTrailer,
			VIN:                "ABCDEFGH777777",
			TrailerID:          "C000001",
			ApprovalTypeNumber: "AT-9983",
			PlateSerialNumber:  "XYZ123",
		},
		RecipientEmailAddress: "customer@example.com",
		Letter: document.Letter{
			LetterType:          document.LetterTypeTrailerAcceptance,
			LetterIssuer:        "user",
			LetterDateRequested: "2023-02-23T12:34:56.789Z",
			ParagraphID:         document.Paragraph6,
		},
	})
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	return string(payload)
}

func TestParseMessageEmptyBody(t *testing.T) {
	_, _, err := ParseMessage("   ")
	var empty ErrEmptyBody
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParseMessageInvalidJSON(t *testing.T) {
	_, meta, err := ParseMessage("{bad-json")
	var decode ErrDecode
	if !errors.As(err, &decode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if meta.BodyLen != len("{bad-json") || meta.BodySHA == "" {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestParseMessageUnsupportedName(t *testing.T) {
	_, _, err := ParseMessage(`{"documentName":"weekly-digest"}`)
	var unsupported document.UnsupportedNameError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedNameError, got %v", err)
	}
}

func TestHandleMessageUploadsRenderedPDF(t *testing.T) {
	store := &fakeStore{}
	p := &Processor{
		Renderer: fakeRenderer{pdf: []byte("%PDF-1.4 body")},
		Store:    store,
	}

	if err := HandleMessage(context.Background(), p, validBody(t)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if store.fileName != "plate_XYZ123.pdf" {
		t.Fatalf("uploaded file name = %q", store.fileName)
	}
	for key, want := range map[string]string{
		"document-type":            "trailer-into-service",
		"cert-type":                "trailer-into-service",
		"date-of-issue":            "23/02/2023",
		"file-format":              "pdf",
		"file-size":                "13",
		"should-email-certificate": "true",
		"vin":                      "ABCDEFGH777777",
		"trailer-id":               "C000001",
	} {
		if got := store.metadata[key]; got != want {
			t.Fatalf("metadata[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestHandleMessageDoesNotUploadWhenRenderFails(t *testing.T) {
	store := &fakeStore{}
	p := &Processor{
		Renderer: fakeRenderer{err: errors.New("renderer down")},
		Store:    store,
	}

	err := HandleMessage(context.Background(), p, validBody(t))
	var procErr ErrProcess
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if store.puts != 0 {
		t.Fatal("upload must not run after a failed render")
	}
}

func TestHandleMessageSurfacesUploadFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("bucket denied")}
	p := &Processor{
		Renderer: fakeRenderer{pdf: []byte("%PDF-1.4 body")},
		Store:    store,
	}

	err := HandleMessage(context.Background(), p, validBody(t))
	var procErr ErrProcess
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
}

func TestUploadMetadataWithoutRecipient(t *testing.T) {
	model := document.Model{
		Name:     document.NameMinistry,
		MetaData: map[string]string{document.MetaEmail: ""},
	}
	metadata := UploadMetadata(model, 10)
	if metadata["should-email-certificate"] != "false" {
		t.Fatalf("should-email-certificate = %q", metadata["should-email-certificate"])
	}
}
