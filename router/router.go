package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"marketplace/conf"
	_ "marketplace/docs"
	"marketplace/metrics"
	"marketplace/middleware"
	"marketplace/router/api"
	"marketplace/router/page"
	"marketplace/view"
)

const shutdownTimeout = 5 * time.Second

// Options are the dependencies of the web server
type Options struct {
	Config  *conf.Config
	Logger  *zap.Logger
	Fetcher view.CollectionsFetcher
	Metrics *metrics.Metrics
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.New()
	}
}

// New builds the gin engine serving the pages, the fragments and the JSON view
func New(opts Options) (*gin.Engine, error) {
	opts.defaults()
	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	gin.SetMode(opts.Config.GinMode)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Metrics(opts.Metrics),
		middleware.Recovery(opts.Logger),
		// Allow cross-domain access, and those with nginx and other proxies can be closed
		middleware.Cors(opts.Config.AllowOrigin),
	)

	limit := middleware.NewRateLimiter(opts.Config.RateLimit, opts.Config.RateBurst).Handler()

	// Set up accessible routes
	page.Landing(r)
	page.Collections(r, opts.Fetcher, opts.Logger, opts.Metrics, limit)
	api.Collection(r, opts.Fetcher, opts.Logger, opts.Metrics, limit)
	api.Health(r, opts.Config.ApiUrl)
	r.StaticFS(view.AssetsPath, http.FS(view.Assets()))
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r, nil
}

// Run serves until ctx is done, then shuts down gracefully
func Run(ctx context.Context, opts Options) error {
	opts.defaults()
	r, err := New(opts)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              opts.Config.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		opts.Logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("api_url", opts.Config.ApiUrl))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	opts.Logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
