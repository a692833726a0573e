package config

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"

	"resortbook/services/logger"
)

var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary returns nil without error when uploads are not configured.
func ConnectCloudinary(cfg CloudinaryConfig) (*cloudinary.Cloudinary, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return cld, nil
}

// InitApp connects every external component and builds the router,
// websocket hub and scheduler.
func InitApp(cfg *Config, log logger.Logger) (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID")
	configCors.AllowCredentials = true
	if len(cfg.CORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, nil, nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	if err := initComponents(cfg, log); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	m := melody.New()
	c := cron.New()

	return router, m, c, nil
}

func initComponents(cfg *Config, log logger.Logger) error {
	var err error

	DB, err = ConnectDB(cfg.DB)
	if err != nil {
		return err
	}
	log.Info("Connected to db %s", cfg.DB.Redacted())

	RedisClient, err = ConnectRedis(cfg.Redis)
	if err != nil {
		return err
	}
	log.Info("Connected to redis at %s", cfg.Redis.Addr)

	Cloudinary, err = ConnectCloudinary(cfg.Cloudinary)
	if err != nil {
		return err
	}
	if Cloudinary == nil {
		log.Warn("Cloudinary is not configured, image uploads are disabled")
	}

	log.Info("All components initialized successfully")
	return nil
}
