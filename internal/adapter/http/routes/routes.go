package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	request "garage_admin/internal/adapter/http/dto/request"
	response "garage_admin/internal/adapter/http/dto/response"
	"garage_admin/internal/adapter/http/handlers"
	"garage_admin/internal/adapter/persistence/repository"
	"garage_admin/internal/domain/entities"
	"garage_admin/internal/infrastructure/auth"
	"garage_admin/internal/infrastructure/config"
	"garage_admin/internal/infrastructure/database"
	"garage_admin/internal/infrastructure/logging"
	"garage_admin/internal/infrastructure/payments"
	"garage_admin/internal/usecase"
	"garage_admin/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Dependencies is everything the router needs that touches the outside.
type Dependencies struct {
	Config  config.Config
	Repos   *repository.Repositories
	Gateway interfaces.IPaymentGateway
	Tokens  interfaces.ITokenService
	Admin   usecase.AdminAccount
}

// Run will start the server
func Run(ctx context.Context, cfg config.Config) error {
	repos, err := connectRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	admin, err := adminAccount(cfg)
	if err != nil {
		return err
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, payments.WithPayerEmail(cfg.MercadoPagoPayerEmail))
	if err != nil {
		logrus.WithError(err).Warn("Mercado Pago gateway not configured; card payments are recorded without a provider charge")
	} else {
		gateway = mpGateway
	}

	router := NewRouter(Dependencies{
		Config:  cfg,
		Repos:   repos,
		Gateway: gateway,
		Tokens:  auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry),
		Admin:   admin,
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("[http] listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to startup the application: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func connectRepositories(ctx context.Context, cfg config.Config) (*repository.Repositories, error) {
	if cfg.StorageDriver == config.StorageDynamoDB {
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewDynamoRepositories(ddb, cfg.Tables), nil
	}

	db, err := database.ConnectSQL(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewGormRepositories(db)
}

func adminAccount(cfg config.Config) (usecase.AdminAccount, error) {
	acc := usecase.AdminAccount{Email: cfg.AdminEmail, Name: cfg.AdminName, PasswordHash: cfg.AdminPasswordHash}
	if acc.PasswordHash == "" && cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return usecase.AdminAccount{}, err
		}
		acc.PasswordHash = hash
	}
	if acc.PasswordHash == "" {
		logrus.Warn("[auth] no ADMIN_PASSWORD or ADMIN_PASSWORD_HASH set; login is disabled")
	}
	return acc, nil
}

// NewRouter wires use cases and handlers onto a gin engine. Every route is
// mounted at the root and again under /api.
func NewRouter(deps Dependencies) *gin.Engine {
	request.RegisterValidators()

	router := gin.New()
	setMiddlewares(router, deps.Config)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	h := buildHandlers(deps)
	addGarageRoutes(&router.RouterGroup, h)
	addGarageRoutes(router.Group("/api"), h)
	return router
}

func buildHandlers(deps Dependencies) garageHandlers {
	r := deps.Repos

	invoiceUseCase := usecase.NewInvoiceUseCase(r.Invoices, r.Services)
	settlementUseCase := usecase.NewSettlementUseCase(r.Invoices, r.Payments, deps.Gateway)
	authUseCase := usecase.NewAuthUseCase(deps.Admin, deps.Tokens)

	return garageHandlers{
		auth:      handlers.NewAuthHandler(authUseCase, deps.Config.JWTExpiry),
		customers: handlers.NewCrudHandler[entities.Customer, request.CustomerRequest]("customer", usecase.NewCustomerUseCase(r.Customers), nil),
		vehicles:  handlers.NewCrudHandler[entities.Vehicle, request.VehicleRequest]("vehicle", usecase.NewVehicleUseCase(r.Vehicles), nil),
		services:  handlers.NewCrudHandler[entities.Service, request.ServiceRequest]("service", usecase.NewServiceUseCase(r.Services), nil),
		jobItems: handlers.NewCrudHandler[entities.JobItem, request.JobItemRequest]("job item", usecase.NewJobItemUseCase(r.JobItems),
			func(j entities.JobItem) any { return response.FromJobItem(j) }),
		jobCards: handlers.NewCrudHandler[entities.JobCard, request.JobCardRequest]("job card", usecase.NewJobCardUseCase(r.JobCards, r.Services), nil),
		payments: handlers.NewCrudHandler[entities.Payment, request.PaymentRequest]("payment", usecase.NewPaymentUseCase(r.Payments), nil),
		invoices: handlers.NewInvoiceHandler(invoiceUseCase, settlementUseCase),
	}
}

func setMiddlewares(router *gin.Engine, cfg config.Config) {
	router.Use(logging.GinLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.WithField("panic", recovered).Error("Recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	if len(cfg.CORSOrigins) == 0 {
		return
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
