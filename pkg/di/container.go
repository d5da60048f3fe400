package di

import (
	"taskboard-api/application/serviceimpl"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/infrastructure/postgres"
	redispkg "taskboard-api/infrastructure/redis"
	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/pkg/config"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/scheduler"

	"gorm.io/gorm"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional cache; nil means disabled
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository  repositories.UserRepository
	TaskRepository  repositories.TaskRepository
	AuditRepository repositories.AuditRepository
	TxManager       repositories.TxManager

	// Services
	AuthService     services.AuthService
	TaskService     services.TaskService
	TimelineService services.TimelineService
	OverdueMonitor  *serviceimpl.OverdueMonitorService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional; the analytics cache degrades to direct queries
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.AuditRepository = postgres.NewAuditRepository(c.DB)
	c.TxManager = postgres.NewTxManager(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	c.AuthService = serviceimpl.NewAuthService(c.UserRepository, &c.Config.JWT)
	c.TaskService = serviceimpl.NewTaskService(c.TxManager, c.TaskRepository, c.RedisClient)
	c.TimelineService = serviceimpl.NewTimelineService(c.AuditRepository)
	c.OverdueMonitor = serviceimpl.NewOverdueMonitorService(c.TaskRepository)
	logger.Info("Services initialized")
}

func (c *Container) initScheduler() error {
	if !c.Config.Scheduler.Enabled {
		logger.Info("Scheduler disabled")
		return nil
	}

	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()

	if err := c.EventScheduler.AddJob("overdue-report", c.Config.Scheduler.OverdueCron, c.OverdueMonitor.Run); err != nil {
		return err
	}

	logger.Info("Overdue report job registered", "cron", c.Config.Scheduler.OverdueCron)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		AuthService:     c.AuthService,
		TaskService:     c.TaskService,
		TimelineService: c.TimelineService,
		JWTSecret:       c.Config.JWT.Secret,
	}
}
