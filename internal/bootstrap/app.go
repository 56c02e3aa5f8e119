package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"lettergen/internal/document"
	"lettergen/internal/members/directory"
	memberstore "lettergen/internal/members/store"
	dynamostore "lettergen/internal/members/store/dynamo"
	memorystore "lettergen/internal/members/store/memory"
	pgstore "lettergen/internal/members/store/postgres"
	"lettergen/internal/membersync"
	"lettergen/internal/queue"
	"lettergen/internal/render"
	"lettergen/internal/shared/config"
	"lettergen/internal/shared/storage/db"
	"lettergen/internal/storage/object"
	localstore "lettergen/internal/storage/object/local"
	s3store "lettergen/internal/storage/object/s3"
	"lettergen/internal/workerproc"
)

// App holds the wired dependencies for one binary. Build populates the
// letter pipeline; BuildMemberSync populates the reconciliation side.
type App struct {
	Config    config.Config
	Store     object.Store
	Processor *workerproc.Processor
	Queue     queue.Client

	DB          *sql.DB
	MemberStore memberstore.Store
	Sync        *membersync.Service
}

// Build prepares the letter generation pipeline dependencies.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := buildRenderer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Store:     store,
		Processor: &workerproc.Processor{Renderer: renderer, Store: store},
		Queue:     queueClient,
	}, nil
}

// BuildMemberSync prepares the member reconciliation dependencies.
func BuildMemberSync(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, sqlDB, err := buildMemberStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dir, err := directory.New(ctx, directory.Config{
		TenantID:     cfg.AADTenantID,
		ClientID:     cfg.AADClientID,
		ClientSecret: cfg.AADClientSecret,
		GroupID:      cfg.AADGroupID,
	})
	if err != nil {
		return nil, fmt.Errorf("build directory client: %w", err)
	}

	return &App{
		Config:      cfg,
		DB:          sqlDB,
		MemberStore: store,
		Sync: &membersync.Service{
			Directory: dir,
			Store:     store,
		},
	}, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.Branch, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildRenderer(ctx context.Context, cfg config.Config) (workerproc.Renderer, error) {
	if strings.TrimSpace(cfg.RendererFunction) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DOC_GEN_FUNCTION empty; renderer not configured")
			return placeholderRenderer{}, nil
		}
		return nil, fmt.Errorf("DOC_GEN_FUNCTION is required")
	}
	return render.New(ctx, cfg.AWSRegion, cfg.RendererFunction)
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
}

func buildMemberStore(ctx context.Context, cfg config.Config) (memberstore.Store, *sql.DB, error) {
	switch cfg.MemberStoreType {
	case "postgres":
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		if db.IsLambdaRuntime() {
			opts = db.OptionsFromEnv(db.DefaultLambdaOptions())
		}
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			return nil, nil, err
		}
		return &pgstore.PGStore{DB: sqlDB}, sqlDB, nil
	case "memory":
		return memorystore.New(), nil, nil
	default:
		if strings.TrimSpace(cfg.MemberTable) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: MEMBER_TABLE empty; using in-memory member store")
				return memorystore.New(), nil, nil
			}
			return nil, nil, fmt.Errorf("MEMBER_TABLE is required")
		}
		store, err := dynamostore.New(ctx, cfg.AWSRegion, cfg.MemberTable)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type placeholderRenderer struct{}

func (placeholderRenderer) Render(ctx context.Context, model document.Model) ([]byte, error) {
	_ = ctx
	_ = model
	return nil, errors.New("renderer not configured")
}
