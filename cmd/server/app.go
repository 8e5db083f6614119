package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/bookbazaar/bookbazaar-api/internal/api"
	"github.com/bookbazaar/bookbazaar-api/internal/api/middleware"
	"github.com/bookbazaar/bookbazaar-api/internal/config"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/dynamo"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/notify"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/postgres"
	"github.com/bookbazaar/bookbazaar-api/internal/repository"
	"github.com/bookbazaar/bookbazaar-api/internal/service"
	"github.com/bookbazaar/bookbazaar-api/internal/service/auth"
)

// application holds the composed dependency graph for the server.
type application struct {
	Router http.Handler

	db *sql.DB
}

// newApplication connects both stores and builds repositories, services,
// handlers, and the router.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to primary store: %w", err)
	}

	dynamoClient, err := dynamo.NewClient(ctx, cfg.AWS.Region)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create secondary-store client: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	// Primary adapters.
	bookStore := postgres.NewBookStore(db)
	orderStore := postgres.NewOrderStore(db)
	userStore := postgres.NewUserStore(db)
	statsStore := postgres.NewStatsStore(db)

	// Dual-backend repositories.
	books := repository.NewBookRepository(bookStore, dynamo.NewBooksTable(dynamoClient, cfg.AWS.BooksTable))
	orders := repository.NewOrderRepository(orderStore, dynamo.NewOrdersTable(dynamoClient, cfg.AWS.OrdersTable))
	users := repository.NewUserRepository(userStore, dynamo.NewUsersTable(dynamoClient, cfg.AWS.UsersTable))

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	authService := service.NewAuthService(users, auth.NewBcryptHasher(), jwtService)
	orderService := service.NewOrderService(db, bookStore, orderStore, books, orders, users,
		notify.NewFromConfig(awsCfg, cfg.AWS))
	adminService := service.NewAdminService(statsStore)

	router := api.NewRouter(api.RouterDeps{
		Auth:   api.NewAuthHandler(authService),
		Books:  api.NewBookHandler(books),
		Orders: api.NewOrderHandler(orderService),
		Admin:  api.NewAdminHandler(adminService),
		JWT:    middleware.NewAuthMiddleware(jwtService),
	})

	return &application{Router: router, db: db}, nil
}

// Close releases the application's long-lived resources.
func (a *application) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
