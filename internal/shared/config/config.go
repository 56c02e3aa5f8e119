package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Env              string
	AWSRegion        string
	Branch           string
	ObjectStoreType  string
	LocalStoreDir    string
	S3Bucket         string
	SSEKMSKeyID      string
	RendererFunction string
	SQSQueueURL      string
	MemberStoreType  string
	MemberTable      string
	DatabaseURL      string
	AADTenantID      string
	AADClientID      string
	AADClientSecret  string
	AADGroupID       string
	Port             string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	cfg := Config{
		Env:              env,
		AWSRegion:        getEnv("AWS_REGION", "eu-west-1"),
		Branch:           getEnv("BRANCH", "local"),
		ObjectStoreType:  normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		S3Bucket:         getEnv("LETTERS_S3_BUCKET", ""),
		SSEKMSKeyID:      getEnv("SSE_KMS_KEY_ID", ""),
		RendererFunction: getEnv("DOC_GEN_FUNCTION", ""),
		SQSQueueURL:      getEnv("LETTERS_SQS_QUEUE_URL", ""),
		MemberStoreType:  normalizeMemberStore(getEnv("MEMBER_STORE", "dynamo")),
		MemberTable:      getEnv("MEMBER_TABLE", ""),
		DatabaseURL:      dbURL,
		AADTenantID:      getEnv("AAD_TENANT_ID", ""),
		AADClientID:      getEnv("AAD_CLIENT_ID", ""),
		AADClientSecret:  getEnv("AAD_CLIENT_SECRET", ""),
		AADGroupID:       getEnv("AAD_GROUP_ID", ""),
		Port:             getEnv("PORT", "8080"),
	}

	if env == "production" && cfg.ObjectStoreType == "s3" && cfg.S3Bucket == "" {
		log.Printf("LETTERS_S3_BUCKET is required in production")
	}

	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeMemberStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "memory":
		return "memory"
	default:
		return "dynamo"
	}
}
