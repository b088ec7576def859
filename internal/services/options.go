package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/search_products"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/create_category"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/catalog-search-service/internal/app/outbox"
	"github.com/light-bringer/catalog-search-service/internal/config"
	"github.com/light-bringer/catalog-search-service/internal/infrastructure/kafka"
	"github.com/light-bringer/catalog-search-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-search-service/internal/pkg/committer"
	httptransport "github.com/light-bringer/catalog-search-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	HTTPHandler   http.Handler

	// Relay is nil unless relay.enabled is set.
	Relay    *outbox.Relay
	producer *kafka.Producer
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	// 3. Create repositories
	productRepo := repo.NewProductRepo()
	categoryRepo := repo.NewCategoryRepo()
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	readModel := repo.NewReadModel(spannerClient)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	// 4. Create command use cases (write operations)
	createProductUseCase := create_product.NewInteractor(productRepo, outboxRepo, comm, clk)
	updateProductUseCase := update_product.NewInteractor(productRepo, outboxRepo, comm, clk)
	deleteProductUseCase := delete_product.NewInteractor(productRepo, outboxRepo, comm, clk)
	createCategoryUseCase := create_category.NewInteractor(categoryRepo, outboxRepo, comm)

	// 5. Create query use cases (read operations)
	getProductQuery := get_product.NewQuery(readModel)
	listProductsQuery := list_products.NewQuery(readModel)
	searchProductsQuery := search_products.NewQuery(readModel)
	listCategoriesQuery := list_categories.NewQuery(readModel)
	listEventsQuery := list_events.NewQuery(eventsReadModel)

	// 6. Create HTTP handlers
	rs := httptransport.NewResponder(logger, clk)
	productsHandler := httptransport.NewProductsHandler(
		createProductUseCase,
		updateProductUseCase,
		deleteProductUseCase,
		getProductQuery,
		listProductsQuery,
		searchProductsQuery,
		httptransport.PageLimits{
			DefaultPageSize: cfg.Search.DefaultPageSize,
			MaxPageSize:     cfg.Search.MaxPageSize,
		},
		rs,
	)
	categoriesHandler := httptransport.NewCategoriesHandler(createCategoryUseCase, listCategoriesQuery, rs)
	eventsHandler := httptransport.NewEventsHandler(listEventsQuery, rs)

	opts := &ServiceOptions{
		SpannerClient: spannerClient,
		HTTPHandler:   httptransport.NewRouter(productsHandler, categoriesHandler, eventsHandler, logger),
	}

	// 7. Create the outbox relay
	if cfg.Relay.Enabled {
		opts.producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		opts.Relay = outbox.NewRelay(outboxRepo, opts.producer, clk, logger, outbox.Options{
			Interval:   cfg.Relay.Interval,
			BatchSize:  cfg.Relay.BatchSize,
			MaxRetries: cfg.Relay.MaxRetries,
		})
	}

	return opts, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() error {
	var err error
	if s.producer != nil {
		err = s.producer.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	return err
}
