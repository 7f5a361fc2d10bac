package main

import (
	"flag"
	"fmt"

	"dpofinder/controller"
	"dpofinder/db"
	"dpofinder/service"
	"dpofinder/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cliMode := flag.Bool("cli", false, "run the interactive console instead of the HTTP server")
	flag.Parse()

	// Load environment variables
	cfg := utils.LoadConfig()

	directory, err := db.LoadDirectory(cfg.Data.DirectoryCSV)
	if err != nil {
		log.WithError(err).Fatal("Failed to load postal data")
	}

	resolverService := service.NewResolverService(directory)

	if *cliMode {
		runConsole(resolverService)
		return
	}

	db.InitResolutionCache()
	db.InitSuggestionCache()
	db.InitShareDb()

	feedbackService := service.NewFeedbackService()
	feedbackService.Start()
	defer feedbackService.Close()

	log.Infof("Starting DPO finder server on port %d", cfg.Server.Port)
	gin.SetMode(gin.ReleaseMode)

	r := controller.SetupRouter(resolverService, feedbackService)
	log.Panic(r.Run(fmt.Sprintf(":%d", cfg.Server.Port)))
}
