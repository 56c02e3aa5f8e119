package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"lettergen/internal/batch"
	"lettergen/internal/document"
	"lettergen/internal/techrecord"
	"lettergen/internal/workerproc"
)

type stubRenderer struct {
	failVIN string
}

func (s stubRenderer) Render(ctx context.Context, model document.Model) ([]byte, error) {
	_ = ctx
	if model.MetaData[document.MetaVIN] == s.failVIN {
		return nil, errors.New("renderer rejected document")
	}
	return []byte("%PDF-1.4 body"), nil
}

type nullStore struct{}

func (nullStore) Put(ctx context.Context, fileName, contentType string, metadata map[string]string, r io.Reader) (int64, error) {
	_ = ctx
	_ = fileName
	_ = contentType
	_ = metadata
	return io.Copy(io.Discard, r)
}

func record(t *testing.T, messageID, vin string) events.SQSMessage {
	t.Helper()
	payload, err := document.EncodeRequest(document.Request{
		DocumentName: document.NameMinistry,
		TechRecord: techrecord.Record{
			VehicleType:        techrecord.VehicleTypeHGV,
			VIN:                vin,
			ApprovalTypeNumber: "AT-1",
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
	return events.SQSMessage{MessageId: messageID, Body: string(payload)}
}

func runBatch(t *testing.T, proc *workerproc.Processor, records []events.SQSMessage) batch.Outcome {
	t.Helper()
	outcome, err := batch.Run(context.Background(), records,
		func(r events.SQSMessage) string { return r.MessageId },
		func(ctx context.Context, r events.SQSMessage) error {
			return workerproc.HandleMessage(ctx, proc, r.Body)
		},
	)
	if err != nil {
		t.Fatalf("batch.Run: %v", err)
	}
	return outcome
}

func TestBatchReportsOnlyFailedItems(t *testing.T) {
	proc := &workerproc.Processor{Renderer: stubRenderer{failVIN: "VIN-2"}, Store: nullStore{}}
	records := []events.SQSMessage{
		record(t, "m1", "VIN-1"),
		record(t, "m2", "VIN-2"),
		record(t, "m3", "VIN-3"),
	}

	outcome := runBatch(t, proc, records)
	if got := outcome.FailedTokens(); len(got) != 1 || got[0] != "m2" {
		t.Fatalf("failed tokens = %v", got)
	}
	if len(outcome.Succeeded) != 2 {
		t.Fatalf("succeeded = %v", outcome.Succeeded)
	}
}

func TestEmptyEventFailsInvocation(t *testing.T) {
	_, err := batch.Run(context.Background(), []events.SQSMessage{},
		func(r events.SQSMessage) string { return r.MessageId },
		func(context.Context, events.SQSMessage) error { return nil },
	)
	if !errors.Is(err, batch.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestMalformedRecordFailsOnlyItself(t *testing.T) {
	proc := &workerproc.Processor{Renderer: stubRenderer{}, Store: nullStore{}}
	records := []events.SQSMessage{
		{MessageId: "m1", Body: "{bad-json"},
		record(t, "m2", "VIN-2"),
	}

	outcome := runBatch(t, proc, records)
	if got := outcome.FailedTokens(); len(got) != 1 || got[0] != "m1" {
		t.Fatalf("failed tokens = %v", got)
	}
}
