package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/Drolfothesgnir/bbcode/api"
	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/Drolfothesgnir/bbcode/rendercache"
	"github.com/Drolfothesgnir/bbcode/tagconf"
	"github.com/Drolfothesgnir/bbcode/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGINT,
}

func main() {
	// reading .env config file
	config, err := util.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read config file")
	}

	if config.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Configure the validator to use json tags for field names in errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}

	// the tag table is compiled once and shared by all requests
	parser, err := tagconf.NewParser(config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build the BBCode parser")
	}

	log.Info().
		Int("tags", len(parser.Tags())).
		Bool("autolink", parser.Autolink()).
		Str("tags_file", config.TagsFile).
		Str("preset", config.TagPreset).
		Msg("BBCode parser compiled")

	// catching interrupt signals for graceful shutdown
	// stop() or a signal catch makes context Done
	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	// waitgroup which manages goroutines for starting and stopping HTTP server
	waitGroup, ctx := errgroup.WithContext(ctx)

	RunGinServer(ctx, waitGroup, config, parser)

	err = waitGroup.Wait()
	if err != nil {
		log.Fatal().Err(err).Msg("error from wait group")
	}
}

func RunGinServer(
	ctx context.Context,
	waitGroup *errgroup.Group,
	config util.Config,
	parser *bbcode.Parser,
) {
	// rendering works without redis, only slower
	var cache rendercache.Store
	if config.RedisAddress != "" {
		cache = rendercache.NewStore(&config)
	} else {
		log.Warn().Msg("REDIS_ADDRESS is empty, render cache disabled")
	}

	host, port, err := config.ExtractHostPort()
	if err != nil {
		log.Error().Err(err).Msg("invalid HTTP server address")
		return
	}

	service, err := api.NewService(config, parser, cache)
	if err != nil {
		log.Error().Err(err).Msg("cannot create HTTP service")
		return
	}

	waitGroup.Go(func() error {
		log.Info().Str("host", host).Str("port", port).Msg("start HTTP server")

		err := service.Start()

		if err != nil {
			//http.ErrServerClosed is returned once the server begins shutting down
			// which is normal
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			log.Error().Err(err).Msg("cannot start HTTP server")
		}

		return err
	})

	waitGroup.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("HTTP server: graceful shutdown")

		// give the server 5 secs to finish all his processes
		toCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := service.Shutdown(toCtx)

		if err != nil {
			log.Error().Err(err).Msg("cannot shutdown HTTP server gracefully")
		}

		if cache != nil {
			if cerr := cache.Close(); cerr != nil {
				log.Error().Err(cerr).Msg("cannot close the render cache")
			}
		}

		log.Info().Msg("HTTP server is stopped")

		return err
	})
}
