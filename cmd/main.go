package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/services"
	"github.com/vloex/vloex-go/config"
	"github.com/vloex/vloex-go/infrastructure/adapters"
	"github.com/vloex/vloex-go/infrastructure/gin_interface/controllers"
	"github.com/vloex/vloex-go/middleware"
	mockvendor "github.com/vloex/vloex-go/mock"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on the environment")
	}

	apiConfig, err := config.GetVideoApiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get vloex api config")
	}

	webhookConfig, err := config.GetWebhookConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get webhook config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	pollIntervalSeconds := 2
	if interval := os.Getenv("JOB_POLL_INTERVAL_SECONDS"); interval != "" {
		pollIntervalSeconds, err = strconv.Atoi(interval)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to parse job poll interval")
		}
	}

	zeroLogger := adapters.NewZerologWrapper(apiConfig.Debug)

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	fetcher := adapters.NewContentFetcher(zeroLogger, time.Duration(apiConfig.TimeoutSeconds)*time.Second, apiConfig.Debug)

	gateway := adapters.NewVideoGateway(fetcher, apiConfig, zeroLogger)

	jobStore := adapters.NewDynamoJobStore(zeroLogger, dynamoClient, dynamoConfig)

	videoArchive := adapters.NewS3VideoArchive(fetcher, s3Client, s3Config)

	verifier := services.NewWebhookVerifier([]byte(webhookConfig.Secret), webhookConfig.Tolerance())

	webhookProcessor := services.NewWebhookProcessor(zeroLogger, verifier, jobStore, videoArchive, workerPool)

	videoSubmitter := services.NewVideoSubmitter(zeroLogger, gateway)

	// The status stream can ride the vendor's SSE feed instead of polling.
	var jobWatcher inbound.JobWatcherPort
	if os.Getenv("VLOEX_WATCH_MODE") == "stream" {
		eventStream := adapters.NewJobEventStream(apiConfig, workerPool, zeroLogger)
		jobWatcher = services.NewJobStreamRelay(zeroLogger, eventStream, workerPool)
	} else {
		jobWatcher = services.NewJobWatcher(zeroLogger, gateway, workerPool, time.Duration(pollIntervalSeconds)*time.Second)
	}

	webhookController := controllers.NewWebhookController(zeroLogger, webhookProcessor)
	videosController := controllers.NewVideosController(zeroLogger, workerPool, videoSubmitter, gateway, jobWatcher)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// The fake vendor listens on its own port so it stays outside the
	// receiver's JWT middleware; point VLOEX_API_URL at it for local runs.
	if os.Getenv("MOCK_VENDOR") == "true" {
		mockRouter := gin.Default()
		mockvendor.Init(mockRouter, workerPool, zeroLogger, 2)
		err = workerPool.Submit(func() {
			if err := mockRouter.Run(":8081"); err != nil {
				log.Fatal().Err(err).Msg("Failed to start mock vendor!")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to submit mock vendor to worker pool")
		}
	}

	webhookController.RegisterRoutes(router)
	videosController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
