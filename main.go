package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/sqlite"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	envs           *config.Config
	mongoClient    *mongo.Client
	sqliteStore    *sqlite.Store
	redisClient    *redis.Client
	mazeRepo       i.MazeRepo
	authorRepo     i.AuthorRepo
	mazeCache      *cache.RedisMazeCache
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	mazeService    i.MazeService
	authController api_i.Controller
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func newLogger(tag, color string) *logger.Logger {
	l, err := logger.New(tag, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", tag, err)
		os.Exit(1)
	}
	return l
}

func initConfig() {
	var err error
	envs, err = config.Load()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading configuration: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Configuration loaded")
}

func initMongo(ctx context.Context) {
	clientOptions := options.Client().ApplyURI(envs.MongoURI())
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	switch envs.StoreDriver {
	case config.StoreSQLite:
		var err error
		sqliteStore, err = sqlite.Open(envs.SQLitePath)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Opening SQLite store: %v", err))
			os.Exit(1)
		}
		mazeRepo = sqliteStore.Mazes()
		authorRepo = sqliteStore.Authors()
		appLogger.Info(fmt.Sprintf("SQLite repositories initialized at %s", envs.SQLitePath))
	default:
		initMongo(ctx)
		authors := repo.NewAuthorRepo(mongoClient, envs.DBName, "authors")
		if err := authors.EnsureIndexes(ctx); err != nil {
			appLogger.Error(fmt.Sprintf("Creating author indexes: %v", err))
			os.Exit(1)
		}
		authorRepo = authors
		mazeRepo = repo.NewMazeRepo(mongoClient, envs.DBName, "mazes")
		appLogger.Info("MongoDB repositories initialized")
	}
}

func initCache(ctx context.Context) {
	if envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, serving mazes without a cache")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
		DB:       envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	mazeCache = cache.NewRedisMazeCache(redisClient, envs.CacheTTL)
	appLogger.Info("Redis maze cache initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(authorRepo, jwtTokenizer, newLogger("AUTH", config.ColorYellow))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initMazeService() {
	mazeLogger := newLogger("MAZE", config.ColorCyan)
	cfg := service.MazeConfig{
		Repo:          mazeRepo,
		Generator:     maze.NewGenerator(&maze.Options{Logger: mazeLogger, MaxDimension: envs.MaxDimension}),
		Logger:        mazeLogger,
		DefaultWidth:  envs.MazeWidth,
		DefaultHeight: envs.MazeHeight,
	}
	if mazeCache != nil {
		cfg.Cache = mazeCache
		cfg.Locker = mazeCache
	}

	var err error
	mazeService, err = service.NewMazeService(cfg)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    envs.RESTAddr(),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func closeStores(ctx context.Context) {
	if mongoClient != nil {
		_ = mongoClient.Disconnect(ctx)
	}
	if sqliteStore != nil {
		_ = sqliteStore.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)
	initConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	initRepos(ctx)
	initCache(ctx)
	defer closeStores(context.Background())

	initJWTTokenizer()
	initAuthService()
	initMazeService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		closeStores(context.Background())
		os.Exit(1)
	}
}
