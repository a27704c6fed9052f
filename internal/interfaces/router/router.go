package router

import (
	authsvc "brickfolio-backend/internal/application/auth"
	invsvc "brickfolio-backend/internal/application/investments"
	memsvc "brickfolio-backend/internal/application/members"
	"brickfolio-backend/internal/application/overdue"
	profitsvc "brickfolio-backend/internal/application/profits"
	rentsvc "brickfolio-backend/internal/application/rentals"
	reportsvc "brickfolio-backend/internal/application/reports"
	stdsvc "brickfolio-backend/internal/application/standards"
	"brickfolio-backend/internal/config"
	"brickfolio-backend/internal/infrastructure/database"
	authhandler "brickfolio-backend/internal/interfaces/handlers/auth"
	healthhandler "brickfolio-backend/internal/interfaces/handlers/health"
	investhandler "brickfolio-backend/internal/interfaces/handlers/investments"
	memberhandler "brickfolio-backend/internal/interfaces/handlers/members"
	profithandler "brickfolio-backend/internal/interfaces/handlers/profits"
	rentalhandler "brickfolio-backend/internal/interfaces/handlers/rentals"
	reporthandler "brickfolio-backend/internal/interfaces/handlers/reports"
	stdhandler "brickfolio-backend/internal/interfaces/handlers/standards"
	"brickfolio-backend/internal/middleware"
	"brickfolio-backend/internal/pkg/clock"
	"brickfolio-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, redisClient, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redisClient
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	app.Use(func(c *fiber.Ctx) error {
		user := c.Locals("user")
		if user == nil {
			c.Locals("user", nil)
		}
		return c.Next()
	})

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil && rdb != nil {
		promoter := &overdue.Promoter{DB: db, Clock: clock.System{}}

		// Members
		ms := &memsvc.Service{DB: db}
		mh := &memberhandler.Handlers{Service: ms}
		mg := app.Group("/api/v1/members", middleware.RequireAuth())
		mg.Get("/", middleware.AuthorizePermission(constants.ViewData), mh.List)
		mg.Get("/:member_id", middleware.AuthorizePermission(constants.ViewData), mh.Get)
		mg.Post("/", middleware.AuthorizePermission(constants.ManageMembers), mh.Create)
		mg.Put("/:member_id", middleware.AuthorizePermission(constants.ManageMembers), mh.Update)
		mg.Delete("/:member_id", middleware.AuthorizePermission(constants.ManageMembers), mh.Delete)

		// Investments
		is := &invsvc.Service{DB: db}
		ih := &investhandler.Handlers{Service: is}
		ig := app.Group("/api/v1/investments", middleware.RequireAuth())
		ig.Get("/", middleware.AuthorizePermission(constants.ViewData), ih.List)
		ig.Get("/:investment_id", middleware.AuthorizePermission(constants.ViewData), ih.Get)
		ig.Post("/", middleware.AuthorizePermission(constants.ManageInvestments), ih.Create)
		ig.Put("/:investment_id", middleware.AuthorizePermission(constants.ManageInvestments), ih.Update)
		ig.Delete("/:investment_id", middleware.AuthorizePermission(constants.ManageInvestments), ih.Delete)
		ig.Patch("/:investment_id/assign-member", middleware.AuthorizePermission(constants.AssignMember), ih.AssignMember)

		// Standards (rental + profit-sharing)
		ss := &stdsvc.Service{DB: db}
		sh := &stdhandler.Handlers{Service: ss}
		rsg := app.Group("/api/v1/rental-standards", middleware.RequireAuth())
		rsg.Get("/", middleware.AuthorizePermission(constants.ViewData), sh.ListRental)
		rsg.Post("/", middleware.AuthorizePermission(constants.ManageStandards), sh.CreateRental)
		rsg.Put("/:standard_id", middleware.AuthorizePermission(constants.ManageStandards), sh.UpdateRental)
		rsg.Delete("/:standard_id", middleware.AuthorizePermission(constants.ManageStandards), sh.DeleteRental)
		psg := app.Group("/api/v1/profit-standards", middleware.RequireAuth())
		psg.Get("/", middleware.AuthorizePermission(constants.ViewData), sh.ListProfit)
		psg.Post("/", middleware.AuthorizePermission(constants.ManageStandards), sh.CreateProfit)
		psg.Put("/:standard_id", middleware.AuthorizePermission(constants.ManageStandards), sh.UpdateProfit)
		psg.Delete("/:standard_id", middleware.AuthorizePermission(constants.ManageStandards), sh.DeleteProfit)

		// Rental payments
		rents := &rentsvc.Service{DB: db, Promoter: promoter}
		rph := &rentalhandler.Handlers{Service: rents}
		rpg := app.Group("/api/v1/rental-payments", middleware.RequireAuth())
		rpg.Get("/", middleware.AuthorizePermission(constants.ViewData), rph.List)
		rpg.Post("/generate", middleware.AuthorizePermission(constants.GenerateRecords), rph.Generate)
		rpg.Patch("/:payment_id", middleware.AuthorizePermission(constants.EditRecords), rph.Update)
		rpg.Delete("/:payment_id", middleware.AuthorizePermission(constants.EditRecords), rph.Delete)
		rpg.Post("/clear", middleware.AuthorizePermission(constants.ClearRecords), rph.Clear)

		// Member profits
		profits := &profitsvc.Service{DB: db, Promoter: promoter}
		mph := &profithandler.Handlers{Service: profits}
		mpg := app.Group("/api/v1/member-profits", middleware.RequireAuth())
		mpg.Get("/", middleware.AuthorizePermission(constants.ViewData), mph.List)
		mpg.Post("/generate", middleware.AuthorizePermission(constants.GenerateRecords), mph.Generate)
		mpg.Patch("/:profit_id", middleware.AuthorizePermission(constants.EditRecords), mph.Update)
		mpg.Delete("/:profit_id", middleware.AuthorizePermission(constants.EditRecords), mph.Delete)
		mpg.Post("/clear", middleware.AuthorizePermission(constants.ClearRecords), mph.Clear)

		// Reports
		reps := &reportsvc.Service{DB: db}
		reph := &reporthandler.Handlers{Service: reps}
		repg := app.Group("/api/v1/reports", middleware.RequireAuth())
		repg.Get("/annual", middleware.AuthorizePermission(constants.ViewReports), reph.Annual)
	}

	return app, db, rdb, nil
}
