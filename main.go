package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"

	"storekeeper-backend/internal/items"
	"storekeeper-backend/internal/masterdata"
	"storekeeper-backend/internal/platform/db"
	"storekeeper-backend/internal/session"
	"storekeeper-backend/internal/stockevents"
	"storekeeper-backend/internal/users"
	"storekeeper-backend/internal/works"
)

func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	r := newRouter(conn, cfg, mode == "dev")

	srv := &http.Server{
		Addr:    cfg.App.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.App.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

func newRouter(conn *sql.DB, cfg *db.Config, dev bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if dev {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	usersSvc := users.NewService(conn)
	sessSvc := session.NewService(conn, usersSvc, cfg.Session)

	// /{app-name}/api
	api := r.Group("/" + cfg.App.Name + "/api")
	protected := api.Group("", session.Required(sessSvc))

	session.RegisterRoutes(api, protected, sessSvc, !dev)
	users.RegisterRoutes(protected, usersSvc)
	masterdata.RegisterRoutes(protected, conn)
	items.RegisterRoutes(protected, conn)
	works.RegisterRoutes(protected, conn)
	stockevents.RegisterRoutes(protected, conn)

	return r
}
