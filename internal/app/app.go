package app

import (
	"context"
	"time"

	"mealvote/config"
	"mealvote/internal/controllers"
	"mealvote/internal/database"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/jobs"
	"mealvote/internal/logger"
	"mealvote/internal/repositories"
	"mealvote/internal/services"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config
	Location   *time.Location

	Repos       repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	loc, err := config.Location()
	if err != nil {
		return &App{}, log.Err("failed to load application timezone", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	services, err := services.New(db, config, repos, loc)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	controllers := controllers.New(db, repos, services, config, loc)
	middleware := middleware.New(controllers.Auth, config)

	if err := jobs.RegisterAllJobs(services.Scheduler, config, services); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	if err := services.Scheduler.Start(context.Background()); err != nil {
		return &App{}, log.Err("failed to start scheduler", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		Location:    loc,
		Middleware:  middleware,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	if a.Location == nil {
		return log.ErrMsg("location is nil")
	}

	nilChecks := []any{
		a.Services.Auth,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.PollLifecycle,
		a.Controllers.Auth,
		a.Controllers.Poll,
		a.Controllers.Vote,
		a.Controllers.Result,
		a.Controllers.Dish,
		a.Controllers.Wishlist,
		a.Controllers.Feedback,
		a.Repos.User,
		a.Repos.Dish,
		a.Repos.VotePoll,
		a.Repos.Vote,
		a.Repos.History,
		a.Repos.Wishlist,
		a.Repos.Feedback,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
