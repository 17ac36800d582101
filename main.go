package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"imperialvip/internal/cache"
	intconfig "imperialvip/internal/config"
	"imperialvip/internal/db"
	router "imperialvip/internal/http"
	"imperialvip/internal/http/handlers"
	"imperialvip/internal/http/middleware"
	"imperialvip/internal/notify"
	"imperialvip/internal/repositories"
	"imperialvip/internal/services"
	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	utils.SetupLogger(os.Stdout, env.LogLevel)

	sqlDB := intconfig.ConnectDB()
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureSchema(bootCtx, sqlDB); err != nil {
		cancelBoot()
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	cancelBoot()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// In-process cache plus optional Redis edge tier
	mem := cache.NewMemory(time.Now)
	go mem.RunJanitor(ctx, time.Minute)

	cacheCfg := intconfig.LoadCacheConfig()
	var (
		evictor cache.TagEvictor = cache.NopEvictor{}
		edge    middleware.ResponseStore
	)
	if rdb := intconfig.NewRedisClient(); rdb != nil {
		defer rdb.Close()
		e := cache.NewEdge(rdb, cacheCfg.Prefix)
		evictor, edge = e, e
		utils.LogEvent("", "main", "redis", "edge cache enabled")
	} else {
		utils.LogWarn("", "main", "redis", "redis unreachable, edge cache disabled", nil)
	}

	// Repositories
	vehicleRepo := repositories.VehicleRepository{DB: sqlDB}
	regionRepo := repositories.RegionRepository{DB: sqlDB}
	heroRepo := repositories.HeroRepository{DB: sqlDB}
	galleryRepo := repositories.GalleryRepository{DB: sqlDB}
	settingsRepo := repositories.SettingsRepository{DB: sqlDB}
	contactRepo := repositories.ContactRepository{DB: sqlDB}
	adminRepo := repositories.AdminRepository{DB: sqlDB}
	rateRepo := repositories.RateRepository{DB: sqlDB}
	reservationRepo := repositories.ReservationRepository{DB: sqlDB}

	// Notification channels; attempts go through RabbitMQ when configured
	fileLog := notify.NewFileLog(env.LogDir)
	var attempts notify.AttemptRecorder = fileLog
	if qcfg := intconfig.LoadQueueConfig(); qcfg.URL != "" {
		attempts = notify.QueueLog{Config: qcfg, Fallback: fileLog}
		go notify.RunAttemptConsumer(ctx, qcfg, fileLog)
	}
	mailCfg := intconfig.LoadMailSettings()
	itinerary := services.ItineraryService{FontDir: filepath.Join(env.WebRoot, "fonts")}
	notifier := services.NotificationService{
		Mailer:     notify.SMTPMailer{Settings: mailCfg, LogoPath: filepath.Join(env.WebRoot, "images", "logo.png")},
		Documents:  notify.NewWhatsApp(intconfig.LoadWhatsAppSettings()),
		Attempts:   attempts,
		Itinerary:  itinerary,
		AdminEmail: mailCfg.AdminEmail,
	}
	var notifyWG sync.WaitGroup

	// Services
	invalidator := services.Invalidator{Cache: mem, Edge: evictor}
	catalog := services.CatalogService{
		Vehicles: vehicleRepo,
		Regions:  regionRepo,
		Hero:     heroRepo,
		Cache:    mem,
		WebRoot:  env.WebRoot,
	}
	rates := services.RateService{Repo: rateRepo, Cache: mem}
	site := services.SiteService{
		Settings:    settingsRepo,
		Gallery:     galleryRepo,
		Contacts:    contactRepo,
		Cache:       mem,
		Invalidator: invalidator,
		Mail:        notifier,
	}
	reservations := services.ReservationService{
		Repo:     reservationRepo,
		Vehicles: vehicleRepo,
		Catalog:  catalog,
		Notifier: services.AsyncNotifier{Inner: notifier, WG: &notifyWG},
	}
	admin := services.AdminCatalogService{
		Vehicles:    vehicleRepo,
		Regions:     regionRepo,
		Hero:        heroRepo,
		Invalidator: invalidator,
	}
	auth := services.AuthService{Admins: adminRepo, Secret: []byte(env.JWTSecret)}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := auth.SeedAdmin(seedCtx, env.AdminUsername, env.AdminPassword); err != nil {
		utils.LogError("", "main", "seed_admin", "admin seed failed", err)
	}
	cancelSeed()

	r := router.NewRouter(router.Deps{
		Env: env,
		Handlers: handlers.Handler{
			Catalog:      catalog,
			Site:         site,
			Reservations: reservations,
			Rates:        rates,
			RateCache:    invalidator,
			Admin:        admin,
			Auth:         auth,
			Itinerary:    itinerary,
			Uploads:      handlers.Uploader{Root: env.WebRoot},
		},
		Tokens: auth,
		Edge:   edge,
		Cache:  cacheCfg,
		Ping:   intconfig.PingDB,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown failed: %v", err)
	}

	// Let in-flight notifications finish before the queue consumer stops.
	done := make(chan struct{})
	go func() {
		notifyWG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(90 * time.Second):
		log.Println("notifications still running, exiting anyway")
	}
	stop()

	log.Println("server stopped.")
}
