package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/docs" //this is required to generate swagger docs
	"catalog/internal/ratelimiter"
	"catalog/internal/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config      config
	store       store.Storage
	logger      *zap.SugaredLogger
	cld         *cloudinary.Cloudinary
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Request context timeout; handlers stop work once ctx.Done() fires.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Post("/login", app.loginHandler)
		r.Get("/search", app.searchProductsHandler)
		r.Get("/topproducts", app.topProductsHandler)

		// Catalog resources: reads need authentication, writes need staff.
		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.AdminOrReadOnly)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", app.listCategoriesHandler)
				r.Post("/", app.createCategoryHandler)
				r.Route("/{categoryID}", func(r chi.Router) {
					r.Get("/", app.getCategoryHandler)
					r.Put("/", app.updateCategoryHandler)
					r.Delete("/", app.deleteCategoryHandler)
				})
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", app.listTagsHandler)
				r.Post("/", app.createTagHandler)
				r.Route("/{tagID}", func(r chi.Router) {
					r.Get("/", app.getTagHandler)
					r.Put("/", app.updateTagHandler)
					r.Delete("/", app.deleteTagHandler)
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", app.listProductsHandler)
				r.Post("/", app.createProductHandler)
				r.Route("/{productID}", func(r chi.Router) {
					r.Get("/", app.getProductHandler)
					r.Put("/", app.updateProductHandler)
					r.Delete("/", app.deleteProductHandler)
				})
			})

			r.Route("/productimages", func(r chi.Router) {
				r.Get("/", app.listProductImagesHandler)
				r.Post("/", app.createProductImageHandler)
				r.Post("/upload", app.uploadProductImageHandler)
				r.Route("/{imageID}", func(r chi.Router) {
					r.Get("/", app.getProductImageHandler)
					r.Put("/", app.updateProductImageHandler)
					r.Delete("/", app.deleteProductImageHandler)
				})
			})
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Get("/profile", app.getProfileHandler)
			r.Put("/profile", app.updateProfileHandler)
			r.Get("/productstats", app.productStatsHandler)

			// Staff only
			r.Group(func(r chi.Router) {
				r.Use(app.RequireStaff)

				r.Get("/profiles", app.listProfilesHandler)
				r.Get("/dashboard", app.dashboardHandler)
				r.Post("/bulkproducts", app.bulkCreateProductsHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
