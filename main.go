package main

import (
	"log"
	"time"

	"mind-service/internal/config"
	"mind-service/internal/db"
	"mind-service/internal/event"
	"mind-service/internal/generator"
	"mind-service/internal/handlers"
	"mind-service/internal/kakao"
	"mind-service/internal/middleware"
	"mind-service/internal/repository"
	"mind-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	database := client.Database(cfg.MongoDatabase)

	var publisher *event.Publisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		publisher, err = event.NewPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	testRepo := repository.NewTestRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	resultRepo := repository.NewResultRepository(database)
	savedRepo := repository.NewSavedResultRepository(database)
	accountRepo := repository.NewAccountRepository(database)
	linkedRepo := repository.NewLinkedUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)

	gen := generator.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	kakaoClient := kakao.New(cfg.KakaoAccessKey, cfg.KakaoRedirectURI)

	testService := service.NewTestService(testRepo, progressRepo)
	resultService := service.NewResultService(testRepo, progressRepo, resultRepo, savedRepo, gen)
	memberService := service.NewMemberService(accountRepo, linkedRepo, tokenRepo, kakaoClient, cfg.Salt)

	testHandler := handlers.NewTestHandler(testService)
	resultHandler := handlers.NewResultHandler(resultService)
	memberHandler := handlers.NewMemberHandler(memberService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-Access-Token"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.Identity(client, memberService))

	r.POST("/kakao/token", func(c *gin.Context) {
		memberHandler.KakaoToken(c)
		publisher.Publish(event.MemberLinked, gin.H{"service": "kakao"})
	})
	r.POST("/member/login", func(c *gin.Context) {
		memberHandler.Login(c)
		publisher.Publish(event.MemberLogin, nil)
	})
	r.POST("/member/join", func(c *gin.Context) {
		memberHandler.Join(c)
		publisher.Publish(event.MemberJoined, nil)
	})
	r.GET("/member/info", memberHandler.Info)

	test := r.Group("/test")
	{
		test.GET("", func(c *gin.Context) {
			testHandler.StartTest(c)
			publisher.Publish(event.TestStarted, gin.H{"selectTest": c.Query("selectTest")})
		})
		test.GET("/list", testHandler.TestList)
		test.POST("/update", func(c *gin.Context) {
			testHandler.UpdateProgress(c)
			publisher.Publish(event.ProgressUpdated, nil)
		})
		test.POST("/result", func(c *gin.Context) {
			resultHandler.GenerateResult(c)
			publisher.Publish(event.ResultGenerated, nil)
		})
		test.GET("/result/history", resultHandler.History)
		test.POST("/result/save", func(c *gin.Context) {
			resultHandler.Save(c)
			publisher.Publish(event.ResultSaved, nil)
		})
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
