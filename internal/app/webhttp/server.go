package webhttp

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sir_venger/s3_gallery/internal/config"
	"github.com/sir_venger/s3_gallery/internal/usecase/imagesvc"
	"github.com/sir_venger/s3_gallery/internal/view"
	"github.com/sir_venger/s3_gallery/pkg/storageclient"
)

type Server struct {
	Images   imagesvc.Service
	Cfg      *config.Config
	Logger   *slog.Logger
	Metrics  *Metrics
	Registry *prometheus.Registry
	// Limiter nil — лимит на загрузку выключен.
	Limiter *Limiter

	ready atomic.Bool
}

// NewServer собирает сервис изображений поверх Storage API и HTTP-роутер.
func NewServer(cfg *config.Config, logger *slog.Logger) (http.Handler, *Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	srv := &Server{
		Images:   buildImageService(cfg, logger, metrics),
		Cfg:      cfg,
		Logger:   logger,
		Metrics:  metrics,
		Registry: reg,
	}
	if n := cfg.Upload.RateLimitPerMinute; n > 0 {
		srv.Limiter = NewLimiter(n)
	}
	srv.SetReady(true)

	return srv.Routes(), srv, nil
}

func buildImageService(cfg *config.Config, logger *slog.Logger, metrics *Metrics) imagesvc.Service {
	cli := storageclient.New(storageclient.Config{
		UploadURL: cfg.UploadAPIURL,
		ListURL:   cfg.ListAPIURL,
		Timeout:   cfg.Upstream.Timeout,
		OnBytes:   metrics.AddUploadedBytes,
	})

	return imagesvc.New(imagesvc.Deps{
		StorageCli:       cli,
		Logger:           logger,
		Observer:         metrics,
		RequireImageType: cfg.Upload.RequireImageType,
	})
}

// SetReady переключает /readyz; при остановке сервер снимается с балансировки.
func (s *Server) SetReady(v bool) {
	s.ready.Store(v)
}

// Routes регистрирует страницу, API, статику и служебные эндпоинты.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(withRequestID)
	r.Use(s.withLogging)
	r.Use(s.withRecover)
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware)
	}

	r.Get("/", s.getPage)
	r.Get("/gallery", s.getGallery)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/images", s.getImages)
		ar.With(s.rateLimit).Post("/upload", s.postUpload)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(view.StaticFS()))))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	if s.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
