package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"

	_ "culturevault/docs"
	"culturevault/pkg/db"
	"culturevault/pkg/events"
	"culturevault/pkg/governance"
	"culturevault/pkg/ledger"
	"culturevault/pkg/notify"
	"culturevault/pkg/payments"
	"culturevault/pkg/pricing"
	"culturevault/pkg/purchase"
	"culturevault/pkg/registry"
	"culturevault/pkg/stats"
)

// @title           CultureVault API
// @version         1.0
// @description     Dual-ledger rights management for cultural digital assets: registry, dynamic pricing, access-credit settlement and consumption metering

// @host      localhost:8080
// @BasePath  /

// @schemes   http https

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	pool := db.Connect()
	defer pool.Close()

	hub := events.NewHub()
	notifier := notify.NewSendgridNotifier()

	assetsRepo := registry.NewPostgresAssetRepository(pool)
	assetsService := registry.NewAssetService(assetsRepo, hub)
	assetsHandler := registry.NewAssetHandler(assetsService)

	statsRepo := stats.NewPostgresStatsRepository(pool)
	statsService := stats.NewStatsService(statsRepo, assetsRepo)
	statsHandler := stats.NewStatsHandler(statsService)

	weightsRepo := pricing.NewPostgresWeightsRepository(pool)
	pricingService := pricing.NewPricingService(assetsRepo, statsRepo, weightsRepo)
	pricingHandler := pricing.NewPricingHandler(pricingService)

	purchaseRepo := purchase.NewPostgresPurchaseRepository(pool, payments.NewPayoutLedger())
	purchaseService := purchase.NewPurchaseService(purchaseRepo, hub, notifier)
	purchaseHandler := purchase.NewPurchaseHandler(purchaseService)

	ledgerRepo := ledger.NewPostgresLedgerRepository(pool)
	ledgerService := ledger.NewLedgerService(ledgerRepo, assetsRepo, hub)
	ledgerHandler := ledger.NewLedgerHandler(ledgerService)

	governanceRepo := governance.NewPostgresGovernanceRepository(pool)
	governanceService := governance.NewGovernanceService(governanceRepo, loadAuthorityFromEnv(), hub)
	governanceHandler := governance.NewGovernanceHandler(governanceService)

	eventsRepo := events.NewPostgresEventRepository(pool)
	eventsHandler := events.NewHandler(eventsRepo, hub)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfigFromEnv()))

	assetsHandler.RegisterRoutes(router)
	statsHandler.RegisterRoutes(router)
	pricingHandler.RegisterRoutes(router)
	purchaseHandler.RegisterRoutes(router)
	ledgerHandler.RegisterRoutes(router)
	governanceHandler.RegisterRoutes(router)
	eventsHandler.RegisterRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	certFile := os.Getenv("TLS_CERT_PATH")
	keyFile := os.Getenv("TLS_KEY_PATH")

	go func() {
		var err error
		if certFile != "" && keyFile != "" {
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// loadAuthorityFromEnv reads the governance authority identity. Either
// AUTHORITY_KEY_HASH (bcrypt) or, for development, a plain AUTHORITY_KEY
// that gets hashed at startup. With neither set, every privileged call is
// rejected.
func loadAuthorityFromEnv() governance.Authority {
	authority := governance.Authority{
		Address: os.Getenv("AUTHORITY_ADDRESS"),
		KeyHash: os.Getenv("AUTHORITY_KEY_HASH"),
	}

	if authority.KeyHash == "" {
		if key := os.Getenv("AUTHORITY_KEY"); key != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("hash authority key: %v", err)
			}
			authority.KeyHash = string(hash)
		}
	}

	if authority.Address == "" || authority.KeyHash == "" {
		log.Println("Governance authority not configured; privileged endpoints will reject all callers")
	}

	return authority
}

func corsConfigFromEnv() cors.Config {
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins == "" {
		origins = []string{"*"}
	} else {
		parts := strings.Split(allowedOrigins, ",")
		origins = make([]string, 0, len(parts))
		for _, p := range parts {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) == 0 {
			origins = []string{"*"}
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Authority-Address", "X-Authority-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: strings.EqualFold(os.Getenv("CORS_ALLOW_CREDENTIALS"), "true"),
		MaxAge:           12 * time.Hour,
	}
}
