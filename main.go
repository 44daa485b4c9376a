package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"librarium/config"
	"librarium/internals/auth"
	"librarium/internals/controllers"
	"librarium/internals/middleware"
	"librarium/internals/service"
	"librarium/internals/storage"
	"librarium/loggers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	log := loggers.New(cfg.LogLevel)

	db, err := storage.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := storage.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	redisClient, err := auth.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	gateway := auth.NewGateway(cfg, auth.NewRedisTokenStore(redisClient))
	accounts := service.NewAccountService(db, gateway, log)
	catalog := service.NewCatalogService(db, log)
	lending := service.NewLendingService(db, log)

	users := controllers.NewUserController(accounts, log)
	authors := controllers.NewAuthorController(catalog, log)
	books := controllers.NewBookController(catalog, log)
	orders := controllers.NewOrderController(lending, log)
	authMiddleware := middleware.NewAuth(gateway, accounts, log)

	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	api := router.Group("/api")
	api.POST("/user", users.Register)
	api.POST("/user/login", users.Login)
	api.GET("/author/list", authors.List)
	api.GET("/book/list", books.List)

	authed := api.Group("", authMiddleware.RequireAuth)
	authed.GET("/validate", users.Validate)
	// PUT /user/me and PUT /user/:id share one route, see UpdateByID
	authed.PUT("/user/:id", users.UpdateByID)

	admin := authed.Group("", middleware.RequireAdmin)
	admin.DELETE("/user/:id", users.Delete)
	admin.GET("/user/list", users.List)
	admin.POST("/author", authors.Create)
	admin.PUT("/author/:id", authors.Update)
	admin.DELETE("/author/:id", authors.Delete)
	admin.POST("/book", books.Create)
	admin.PUT("/book/:id", books.Update)
	admin.DELETE("/book/:id", books.Delete)
	admin.POST("/order", orders.Issue)
	admin.POST("/order/return", orders.Return)
	admin.GET("/order/:userId/users", orders.ListForUser)

	log.WithField("addr", cfg.ListenAddr).Info("starting library management server")
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
