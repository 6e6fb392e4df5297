package main

import (
	"rentalspot/internal/bootstrap"
	bookingshandler "rentalspot/internal/bookings/handler"
	bookingsservice "rentalspot/internal/bookings/service"
	calendarshandler "rentalspot/internal/calendars/handler"
	calendarsservice "rentalspot/internal/calendars/service"
	rulehandler "rentalspot/internal/pricingrules/handler"
	ruleservice "rentalspot/internal/pricingrules/service"
	rulevalidator "rentalspot/internal/pricingrules/validator"
	propertyhandler "rentalspot/internal/properties/handler"
	propertyservice "rentalspot/internal/properties/service"
	propertyvalidator "rentalspot/internal/properties/validator"
	"rentalspot/pkg/app"
	"rentalspot/pkg/config"
	"rentalspot/pkg/contracts"
)

const ServiceName = "pricing-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Pricing API")
	serverApp := app.NewApplication()
	handlers := initServices(cfg, serverApp)
	serverApp.SetApp(cfg, handlers)
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) contracts.Handlers {
	core, err := bootstrap.NewCore(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to build calendar generator", "error", err)
	}
	notifier, closeNotifier, err := core.NewNotifier(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to build change notifier", "error", err)
	}
	serverApp.OnShutdown(closeNotifier)

	repos := core.Repos
	ruleValidator := rulevalidator.NewRuleValidator(cfg.Log)

	propertyService := propertyservice.NewPropertyService(
		repos.Properties,
		propertyvalidator.NewPropertyValidator(cfg.Log),
		notifier,
		cfg,
	)
	seasonService := ruleservice.NewSeasonalPricingService(repos.Seasons, repos.Properties, ruleValidator, notifier, cfg)
	overrideService := ruleservice.NewDateOverrideService(repos.Overrides, repos.Properties, ruleValidator, notifier, cfg)
	minimumStayService := ruleservice.NewMinimumStayRuleService(repos.MinimumStays, repos.Properties, ruleValidator, notifier, cfg)

	calendarService := calendarsservice.NewCalendarService(repos.Calendars, core.Cache, core.Generator, cfg)
	quoteService := calendarsservice.NewQuoteService(
		repos.Properties,
		repos.Coupons,
		repos.Calendars,
		core.Cache,
		core.Generator,
		core.Calculator,
		cfg,
	)
	holdSweeper := bookingsservice.NewHoldSweeper(repos.Bookings, notifier, cfg)

	cfg.Log.Info("Pricing services initialized", "database", cfg.MongoDatabaseName, "regeneration_mode", cfg.RegenerationMode)

	return contracts.Handlers{
		propertyhandler.NewPropertyHandler(propertyService, cfg.Log),
		rulehandler.NewRuleHandler(seasonService, overrideService, minimumStayService, cfg.Log),
		calendarshandler.NewCalendarHandler(calendarService, core.Generator, quoteService, cfg.Log),
		bookingshandler.NewHoldHandler(holdSweeper, cfg.Log),
	}
}
