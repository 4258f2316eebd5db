package main

import (
	"database/sql"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"acheiBack/internal/config"
	"acheiBack/internal/handlers"
	"acheiBack/internal/match"
	"acheiBack/internal/notify"
	"acheiBack/internal/repositories"
	"acheiBack/internal/services"
	"acheiBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	cfg      config.Config

	tokenManager *utils.Manager
	pipeline     *match.Pipeline
	wsManager    *WebSocketManager

	userRepo *repositories.UserRepository

	userHandler        *handlers.UserHandler
	itemHandler        *handlers.ItemHandler
	matchHandler       *handlers.MatchHandler
	categoryHandler    *handlers.CategoryHandler
	locationHandler    *handlers.LocationHandler
	colorHandler       *handlers.ColorHandler
	brandHandler       *handlers.BrandHandler
	itemImageHandler   *handlers.ItemImageHandler
	chatHandler        *handlers.ChatHandler
	notifyTokenHandler *handlers.NotifyTokenHandler

	messageService *services.MessageService
}

// pipelineLogger adapts the leveled log pair to the matcher's logging interface.
type pipelineLogger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
}

func (l pipelineLogger) Infof(format string, args ...interface{})  { l.infoLog.Printf(format, args...) }
func (l pipelineLogger) Errorf(format string, args ...interface{}) { l.errorLog.Printf(format, args...) }

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, infoLog, errorLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}

	var storage *utils.Storage
	if cfg.Storage.Bucket != "" {
		storage, err = utils.NewStorage(cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint)
		if err != nil {
			return nil, err
		}
	}

	// Repositories
	var cache *repositories.CandidateCache
	if rdb != nil {
		cache = repositories.NewCandidateCache(rdb, 10*time.Minute)
	}
	userRepo := &repositories.UserRepository{DB: db}
	itemRepo := &repositories.ItemRepository{DB: db, Cache: cache}
	matchRepo := &repositories.MatchRepository{DB: db}
	matchJobRepo := &repositories.MatchJobRepository{DB: db}
	imageRepo := &repositories.ItemImageRepository{DB: db}
	chatRepo := &repositories.ChatRepository{Db: db}
	messageRepo := &repositories.MessageRepository{Db: db}
	notifyTokenRepo := &repositories.NotifyTokenRepository{DB: db}
	categoryRepo := repositories.NewCategoryRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	colorRepo := repositories.NewColorRepository(db)
	brandRepo := repositories.NewBrandRepository(db)

	// Matching pipeline
	var notifier match.Notifier
	if fcmClient != nil {
		notifier = notify.NewFCMNotifier(fcmClient, notifyTokenRepo)
	} else {
		notifier = &notify.LogNotifier{Logger: infoLog}
	}
	pipeline := match.New(itemRepo, matchRepo, matchJobRepo, notifier, pipelineLogger{infoLog: infoLog, errorLog: errorLog}, cfg.Matcher)

	// Services
	userService := &services.UserService{
		UserRepo:     userRepo,
		TokenManager: tokenManager,
		AccessTTL:    time.Duration(cfg.Auth.AccessTTLMin) * time.Minute,
		RefreshTTL:   time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour,
	}
	itemService := &services.ItemService{ItemRepo: itemRepo, Cache: cache, Matcher: pipeline, ErrorLog: errorLog}
	matchService := &services.MatchService{MatchRepo: matchRepo, ItemRepo: itemRepo}
	categoryService := &services.CategoryService{CategoryRepo: categoryRepo}
	locationService := &services.LocationService{LocationRepo: locationRepo}
	colorService := &services.ColorService{ColorRepo: colorRepo}
	brandService := &services.BrandService{BrandRepo: brandRepo}
	imageService := &services.ItemImageService{ImageRepo: imageRepo, ItemRepo: itemRepo, Storage: storage}
	chatService := &services.ChatService{ChatRepo: chatRepo, MessageRepo: messageRepo, ItemRepo: itemRepo}
	messageService := &services.MessageService{MessageRepo: messageRepo, ChatRepo: chatRepo}
	notifyTokenService := &services.NotifyTokenService{TokenRepo: notifyTokenRepo}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Auth.Microsoft.ClientID,
		ClientSecret: cfg.Auth.Microsoft.ClientSecret,
		RedirectURL:  cfg.Auth.Microsoft.RedirectURI,
		Scopes:       []string{"openid", "profile", "email", "User.Read"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.Auth.Microsoft.Authority + "/oauth2/v2.0/authorize",
			TokenURL: cfg.Auth.Microsoft.Authority + "/oauth2/v2.0/token",
		},
	}

	return &application{
		errorLog:     errorLog,
		infoLog:      infoLog,
		db:           db,
		cfg:          cfg,
		tokenManager: tokenManager,
		pipeline:     pipeline,
		userRepo:     userRepo,
		userHandler: &handlers.UserHandler{
			Service:     userService,
			OAuth:       oauthConfig,
			FrontendURL: cfg.Auth.Microsoft.FrontendURL,
			ErrorLog:    errorLog,
		},
		itemHandler:        &handlers.ItemHandler{Service: itemService},
		matchHandler:       &handlers.MatchHandler{Service: matchService},
		categoryHandler:    &handlers.CategoryHandler{Service: categoryService},
		locationHandler:    &handlers.LocationHandler{Service: locationService},
		colorHandler:       &handlers.ColorHandler{Service: colorService},
		brandHandler:       &handlers.BrandHandler{Service: brandService},
		itemImageHandler:   &handlers.ItemImageHandler{Service: imageService},
		chatHandler:        &handlers.ChatHandler{ChatService: chatService, MessageService: messageService},
		notifyTokenHandler: &handlers.NotifyTokenHandler{Service: notifyTokenService},
		messageService:     messageService,
	}, nil
}
