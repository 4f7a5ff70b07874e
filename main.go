package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/my-lord1/food-delivery-backend/configs"
	"github.com/my-lord1/food-delivery-backend/pkg/gateway"
	"github.com/my-lord1/food-delivery-backend/pkg/imagestore"
	"github.com/my-lord1/food-delivery-backend/routes"
	"github.com/my-lord1/food-delivery-backend/ws"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg := configs.LoadConfig()

	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	images, err := imagestore.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatalf("image store: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		DB:      configs.DB(),
		Cfg:     cfg,
		Hub:     hub,
		Gateway: &gateway.StubClient{Secret: cfg.PaymentKeySecret},
		Images:  images,
	})

	log.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
