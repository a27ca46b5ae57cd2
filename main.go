package main

import (
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"carbonboard/config"
	"carbonboard/handlers"
	"carbonboard/services"
)

const (
	EndPointHealth       = "/health"
	EndPointRates        = "/api/rates"
	EndPointCountries    = "/api/countries"
	EndPointCompanies    = "/api/companies"
	EndPointCompany      = "/api/companies/:id"
	EndPointSummary      = "/api/summary"
	EndPointMonthly      = "/api/emissions/monthly"
	EndPointSources      = "/api/emissions/sources"
	EndPointStacked      = "/api/emissions/stacked"
	EndPointLeaderboard  = "/api/leaderboard"
	EndPointDirectory    = "/api/directory"
	EndPointProjection   = "/api/projection"
	EndPointTargets      = "/api/targets"
	EndPointTargetConfig = "/api/targets/config"
	EndPointCompanyPosts = "/api/companies/:id/posts"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	dataset := services.NewDatasetService(cfg)
	fx := services.NewFxService(cfg, nil)
	state := services.NewAppState(dataset)

	h := handlers.NewDashboardHandler(dataset, fx, state)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET(EndPointHealth, h.HealthHandler)
	r.GET(EndPointRates, h.RatesHandler)
	r.GET(EndPointCountries, h.CountriesHandler)
	r.GET(EndPointCompanies, h.CompaniesHandler)
	r.GET(EndPointCompany, h.CompanyHandler)
	r.GET(EndPointSummary, h.SummaryHandler)
	r.GET(EndPointMonthly, h.MonthlyEmissionsHandler)
	r.GET(EndPointSources, h.SourceEmissionsHandler)
	r.GET(EndPointStacked, h.StackedEmissionsHandler)
	r.GET(EndPointLeaderboard, h.LeaderboardHandler)
	r.GET(EndPointDirectory, h.DirectoryHandler)
	r.GET(EndPointProjection, h.ProjectionHandler)
	r.GET(EndPointTargets, h.TargetsHandler)
	r.PUT(EndPointTargets, h.SetTargetsHandler)
	r.DELETE(EndPointTargets, h.ClearTargetsHandler)
	r.GET(EndPointTargetConfig, h.TargetConfigHandler)
	r.PUT(EndPointTargetConfig, h.SetTargetConfigHandler)
	r.GET(EndPointCompanyPosts, h.PostsHandler)
	r.POST(EndPointCompanyPosts, h.SavePostHandler)

	log.Infof("Starting carbonboard service on %s:%s", cfg.Host, cfg.Port)
	if err := r.Run(cfg.Host + ":" + cfg.Port); err != nil {
		log.Fatalf("Server terminated: %v", err)
	}
}
