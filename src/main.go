package main

import (
	"fmt"
	"log"
	"net/http"

	"fluxtrail/src/config"
	"fluxtrail/src/db"
	"fluxtrail/src/lib"
	"fluxtrail/src/models"
	"fluxtrail/src/services"
	"fluxtrail/src/store"

	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
)

var algoAddressValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	address, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := sdktypes.DecodeAddress(address)
	return err == nil
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("algoaddress", algoAddressValidatorFunc)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s\n", err.Error())
	}
	registerValidators()

	d := db.Connect(cfg.GetDSN())
	if err := d.AutoMigrate(&models.Route{}, &models.Ticket{}); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	ledger, err := lib.NewAlgodLedger(cfg.AlgodURL, cfg.AlgodToken)
	if err != nil {
		log.Fatalf("Error connecting to algod: %s\n", err.Error())
	}

	routeStore := store.NewRouteStore(d)
	ticketStore := store.NewTicketStore(d)

	authService := services.NewAuthService(cfg)
	routeService := services.NewRouteService(routeStore)
	ticketService := services.NewTicketService(ticketStore, routeStore, ledger)
	statsService := services.NewStatsService(ticketStore, routeStore)

	adminRouter := setupRouter()
	adminHandlers(adminRouter.Group("/flux-trail/admin"), authService, routeService, ticketService, statsService)

	mainRouter := setupRouter()
	fluxTrailHandlers(mainRouter.Group("/flux-trail"), ticketService, routeService)

	go func() {
		log.Printf("Listening on port: %s for the admin app\n", cfg.AdminPort)
		if err := adminRouter.Run(fmt.Sprintf(":%s", cfg.AdminPort)); err != nil {
			log.Fatalf("admin app exited: %s\n", err.Error())
		}
	}()

	log.Printf("Listening on port: %s for the main app\n", cfg.Port)
	if err := mainRouter.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatalf("main app exited: %s\n", err.Error())
	}
}
