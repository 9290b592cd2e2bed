/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command petstore serves the example pet repository over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/tomoncle/hummerdata/cache"
	"github.com/tomoncle/hummerdata/config"
	"github.com/tomoncle/hummerdata/database"
	"github.com/tomoncle/hummerdata/example/controllers"
	"github.com/tomoncle/hummerdata/example/domain"
	"github.com/tomoncle/hummerdata/example/repositories"
	"github.com/tomoncle/hummerdata/repository"
	"github.com/tomoncle/hummerdata/utils"
)

var log = utils.NewLogger("PETSTORE")

func main() {
	configPath := flag.String("config", "", "config file or directory holding config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyLogging()
	if cfg.Log.Backend == "zap" {
		zl, err := database.NewProductionZapLogger(cfg.Log.Level)
		if err != nil {
			log.Fatalf("Failed to build zap logger: %v", err)
		}
		database.InitLogger(zl)
		defer func() { _ = zl.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	domain.RegisterModels(database.DefaultRegistry())
	db, err := database.InitDB(ctx, cfg.ConfigLoader())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	pets := repositories.NewPetRepository(db)
	names, closeCache, err := petNames(ctx, cfg, pets)
	if err != nil {
		log.Fatalf("Failed to set up cache: %v", err)
	}
	defer closeCache()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		status := database.GetHealthStatus(c.Request.Context())
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
	controllers.NewPetController(names, pets, cfg.Pagination).RegisterRoutes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{controllers.HeaderTotalCount, controllers.HeaderTotalPages},
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Starting petstore on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exited")
}

// petNames wraps the name projection in the configured page cache.
func petNames(ctx context.Context, cfg *config.AppConfig, pets *repositories.PetRepository) (repository.PageableRepository[domain.NameDTO], func(), error) {
	var c cache.Cache
	closeFn := func() {}
	switch cfg.Cache.Type {
	case "memory":
		mem := cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		c, closeFn = mem, mem.Stop
	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, falling back to the in-memory cache")
			mem := cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
			c, closeFn = mem, mem.Stop
			break
		}
		c = cache.NewRedisCache(client, "hummerdata", cfg.Cache.TTL)
		closeFn = func() { _ = client.Close() }
	default:
		return pets.Names(), closeFn, nil
	}
	cached := repository.NewCachedPageRepository(pets.Names(), c, cfg.Cache.Namespace, cfg.Cache.TTL)
	// seeds may have changed the table since the last run
	if err := cached.Invalidate(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return cached, closeFn, nil
}
