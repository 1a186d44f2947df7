package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/plant_radar/app/display/api"
	"github.com/iWorld-y/plant_radar/app/display/internal/conf"
	"github.com/iWorld-y/plant_radar/app/display/internal/service"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/config"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, r *conf.Radar, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.Filter(bodyLimit(uploadLimit(r))),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	api.RegisterDisplayHTTPServer(srv, s)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// 上传页面
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(content)
	})

	return srv
}

// uploadLimit 请求体上限：base64 膨胀 4/3，再留出表单和 JSON 的余量
func uploadLimit(r *conf.Radar) int64 {
	n := int64(config.DefaultMaxImageBytes)
	if r != nil && r.Vision != nil && r.Vision.MaxImageBytes > 0 {
		n = r.Vision.MaxImageBytes
	}
	return n*4/3 + 64<<10
}

func bodyLimit(n int64) http.FilterFunc {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if r.ContentLength > n {
				http.DefaultErrorEncoder(w, r, errors.New(nethttp.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "request body too large"))
				return
			}
			r.Body = nethttp.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
