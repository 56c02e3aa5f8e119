package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"lettergen/internal/batch"
	"lettergen/internal/bootstrap"
	"lettergen/internal/shared/config"
	"lettergen/internal/shared/metrics"
	"lettergen/internal/shared/telemetry"
	"lettergen/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	app = built
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}

	outcome, err := batch.Run(ctx, event.Records,
		func(r events.SQSMessage) string { return r.MessageId },
		func(ctx context.Context, r events.SQSMessage) error {
			metrics.IncLettersReceived()
			return workerproc.HandleMessage(ctx, app.Processor, r.Body)
		},
	)
	if err != nil {
		// An empty batch violates the delivery contract; fail the whole
		// invocation so the platform alarms and redelivers.
		return events.SQSEventResponse{}, err
	}

	for range outcome.Succeeded {
		metrics.IncLettersGenerated()
	}
	for range outcome.Failed {
		metrics.IncLettersFailed()
	}
	telemetry.Info("worker.letters.batch_settled", map[string]any{
		"received":  len(event.Records),
		"succeeded": len(outcome.Succeeded),
		"failed":    len(outcome.Failed),
	})

	failures := make([]events.SQSBatchItemFailure, 0, len(outcome.Failed))
	for _, f := range outcome.Failed {
		failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: f.Token})
	}
	return events.SQSEventResponse{BatchItemFailures: failures}, nil
}

func main() {
	lambda.Start(handler)
}
