package main

// Enqueue a letter request from a JSON file:
//   go run ./cmd/enqueue -file request.json

import (
	"context"
	"flag"
	"log"
	"os"

	"lettergen/internal/document"
	"lettergen/internal/queue"
	"lettergen/internal/shared/config"
)

func main() {
	file := flag.String("file", "", "path to a letter request JSON file")
	flag.Parse()

	if *file == "" {
		log.Print("usage: enqueue -file request.json")
		os.Exit(2)
	}

	payload, err := os.ReadFile(*file)
	if err != nil {
		log.Printf("read request file: %v", err)
		os.Exit(1)
	}

	req, err := document.DecodeRequest(payload)
	if err != nil {
		log.Printf("decode request: %v", err)
		os.Exit(1)
	}
	if !req.DocumentName.Supported() {
		log.Printf("unsupported document name %q", req.DocumentName)
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()

	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
	if err != nil {
		log.Printf("create queue client: %v", err)
		os.Exit(1)
	}

	if err := client.Send(ctx, req); err != nil {
		log.Printf("send request: %v", err)
		os.Exit(1)
	}

	log.Printf("enqueued %s letter for vin %s", req.DocumentName, req.TechRecord.VIN)
}
