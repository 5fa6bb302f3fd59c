package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/Drolfothesgnir/bbcode/rendercache"
	"github.com/Drolfothesgnir/bbcode/tagconf"
	"github.com/Drolfothesgnir/bbcode/util"
	"github.com/gin-gonic/gin"
)

const (
	// api routes
	RequestIDHeader = "X-Request-ID"
	PingURL         = "/ping"
	RenderURL       = "/render"
	TagsURL         = "/tags"
)

type Service struct {
	config      util.Config
	parser      *bbcode.Parser
	fingerprint string
	cache       rendercache.Store
	server      *http.Server
	router      *gin.Engine
}

// Returns new service instance rendering with the parser. cache may be nil,
// in which case every request is rendered from scratch.
func NewService(
	config util.Config,
	parser *bbcode.Parser,
	cache rendercache.Store,
) (*Service, error) {
	fingerprint, err := tagconf.Fingerprint(parser)
	if err != nil {
		return nil, fmt.Errorf("cannot fingerprint the tag table: %w", err)
	}

	service := &Service{
		config:      config,
		parser:      parser,
		fingerprint: fingerprint,
		cache:       cache,
	}

	server := &http.Server{
		Addr: config.HTTPServerAddress,
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time you’ll spend writing the response (no “forever hanging” clients)
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
