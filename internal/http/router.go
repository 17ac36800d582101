package api

import (
	"context"
	"log"
	stdhttp "net/http"
	"path/filepath"

	intconfig "imperialvip/internal/config"
	h "imperialvip/internal/http/handlers"
	"imperialvip/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs beyond the handlers themselves.
type Deps struct {
	Env      intconfig.Env
	Handlers h.Handler
	Tokens   middleware.TokenVerifier
	// Edge is nil when Redis is unavailable; pages are then always rendered.
	Edge  middleware.ResponseStore
	Cache intconfig.CacheConfig
	Ping  func(context.Context) error
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}
	r.MaxMultipartMemory = 8 << 20

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "sayfa bulunamadı",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.Static("/uploads", filepath.Join(d.Env.WebRoot, "uploads"))

	hd := d.Handlers
	edge := func(policy string, extra ...string) gin.HandlerFunc {
		return middleware.OutputCache(d.Edge, d.Cache, policy, extra...)
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck(d.Ping))
		api.GET("/routes", h.Routes)

		api.GET("/rates", middleware.NoStore(), hd.CurrencyRates)
		api.POST("/price", hd.CalculatePrice)

		// Public site, one segment per language (tr/de/ru/en; anything else reads as tr)
		pub := api.Group("/:lang")
		pub.GET("/home", edge(intconfig.PolicyHomePage, intconfig.PolicyGallery, intconfig.PolicyStatic), hd.Home)
		pub.GET("/vehicles", edge(intconfig.PolicyVehicles), hd.ListVehicles)
		pub.GET("/vehicles/:id", edge(intconfig.PolicyVehicles), hd.GetVehicle)
		pub.GET("/regions", edge(intconfig.PolicyRegions), hd.ListRegions)
		pub.GET("/regions/:id", edge(intconfig.PolicyRegions), hd.GetRegion)
		pub.GET("/booking-form", edge(intconfig.PolicyRegions, intconfig.PolicyVehicles), hd.BookingForm)
		pub.GET("/gallery", edge(intconfig.PolicyGallery), hd.Gallery)
		pub.GET("/settings", edge(intconfig.PolicyStatic), hd.Settings)
		pub.POST("/contact", hd.SubmitContact)
		pub.POST("/reservations", hd.CreateReservation)
		pub.GET("/reservations/:id", middleware.NoStore(), hd.ReservationConfirmation)

		api.POST("/admin/login", hd.Login)

		admin := api.Group("/admin", middleware.NoStore(), middleware.AdminAuth(d.Tokens))
		mountAdmin(admin, hd)
	}

	h.SetRouter(r)
	return r
}

func mountAdmin(g *gin.RouterGroup, hd h.Handler) {
	res := g.Group("/reservations")
	res.GET("", hd.AdminListReservations)
	res.GET("/summary", hd.AdminReservationSummary)
	res.GET("/:id", hd.AdminGetReservation)
	res.POST("", hd.AdminCreateReservation)
	res.PUT("/:id/status", hd.AdminUpdateReservationStatus)
	res.DELETE("/:id", hd.AdminDeleteReservation)
	res.GET("/:id/pdf", hd.AdminReservationPDF)

	vehicles := g.Group("/vehicles")
	vehicles.GET("", hd.AdminListVehicles)
	vehicles.GET("/:id", hd.AdminGetVehicle)
	vehicles.POST("", hd.AdminCreateVehicle)
	vehicles.PUT("/:id", hd.AdminUpdateVehicle)
	vehicles.DELETE("/:id", hd.AdminDeleteVehicle)
	vehicles.PATCH("/:id/active", hd.AdminToggleVehicle)
	vehicles.POST("/:id/images", hd.AdminUploadVehicleImage)
	vehicles.DELETE("/:id/images/:imageId", hd.AdminDeleteVehicleImage)

	regions := g.Group("/regions")
	regions.GET("", hd.AdminListRegions)
	regions.GET("/:id", hd.AdminGetRegion)
	regions.POST("", hd.AdminCreateRegion)
	regions.PUT("/:id", hd.AdminUpdateRegion)
	regions.DELETE("/:id", hd.AdminDeleteRegion)
	regions.PATCH("/:id/active", hd.AdminToggleRegion)

	hero := g.Group("/hero")
	hero.GET("", hd.AdminListHeroSlides)
	hero.POST("", hd.AdminCreateHeroSlide)
	hero.PUT("/:id", hd.AdminUpdateHeroSlide)
	hero.PATCH("/:id/active", hd.AdminToggleHeroSlide)
	hero.DELETE("/:id", hd.AdminDeleteHeroSlide)

	g.POST("/uploads/:kind", hd.AdminUploadImage)

	gallery := g.Group("/gallery")
	gallery.GET("", hd.AdminListGallery)
	gallery.POST("", hd.AdminUploadGalleryImage)
	gallery.DELETE("/:id", hd.AdminDeleteGalleryImage)

	g.GET("/settings", hd.AdminListSettings)
	g.PUT("/settings", hd.AdminSaveSettings)

	g.GET("/rates", hd.CurrencyRates)
	g.PUT("/rates", hd.AdminSaveRates)

	contacts := g.Group("/contacts")
	contacts.GET("", hd.AdminListContacts)
	contacts.PATCH("/:id/read", hd.AdminMarkContactRead)
	contacts.DELETE("/:id", hd.AdminDeleteContact)
}
