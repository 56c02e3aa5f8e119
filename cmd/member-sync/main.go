package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/member-sync

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"

	"lettergen/internal/bootstrap"
	"lettergen/internal/shared/config"
	"lettergen/internal/shared/telemetry"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.BuildMemberSync(cfg)
	if err != nil {
		initErr = err
		return
	}
	app = built
}

func handler(ctx context.Context) error {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		return initErr
	}

	telemetry.Debug("membersync.triggered", nil)

	outcome, err := app.Sync.Sync(ctx)
	if err != nil {
		telemetry.Error("membersync.failed", map[string]any{"error": err.Error()})
		return err
	}

	telemetry.Info("membersync.completed", map[string]any{
		"upserted": len(outcome.Succeeded),
	})
	return nil
}

func main() {
	lambda.Start(handler)
}
