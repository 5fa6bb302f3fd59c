package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/Drolfothesgnir/bbcode/rendercache"
	"github.com/gin-gonic/gin"
)

type RenderRequest struct {
	Body string `json:"body" binding:"required"`
}

type RenderResponse struct {
	HTML     string           `json:"html"`
	Warnings []bbcode.Warning `json:"warnings"`
	Cached   bool             `json:"cached"`
}

// render converts the BBCode body into an HTML fragment. Rendered fragments are cached;
// a failing cache is logged and bypassed, never fatal for the request.
func (service *Service) render(ctx *gin.Context) {
	var req RenderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	if len(req.Body) > service.config.MaxBodyLen {
		errField := ErrorField{"body", fmt.Sprintf("must be at most %d bytes long", service.config.MaxBodyLen)}
		ctx.JSON(
			http.StatusRequestEntityTooLarge,
			NewErrorResponse(ErrBodyTooLarge, errField),
		)
		return
	}

	logger := requestLogger(ctx)
	key := rendercache.Key(service.fingerprint, req.Body)

	if service.cache != nil {
		post, err := service.cache.GetRendered(ctx, key)
		switch {
		case err == nil:
			ctx.JSON(http.StatusOK, RenderResponse{
				HTML:     post.HTML,
				Warnings: nonNilWarnings(post.Warnings),
				Cached:   true,
			})
			return
		case !errors.Is(err, rendercache.ErrCacheMiss):
			logger.Warn().Err(err).Str("key", key).Msg("cannot read rendered post from cache")
		}
	}

	warns, err := bbcode.NewWarnings(bbcode.WarnOverflowTrunc, service.config.MaxWarnings)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	html := service.parser.ParseWithWarnings(req.Body, warns)

	post := rendercache.RenderedPost{
		HTML:      html,
		Warnings:  warns.List(),
		CreatedAt: time.Now().UTC(),
	}

	if service.cache != nil {
		err := service.cache.SaveRendered(ctx, key, post, service.config.RenderCacheTTL)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("cannot save rendered post to cache")
		}
	}

	ctx.JSON(http.StatusOK, RenderResponse{
		HTML:     html,
		Warnings: nonNilWarnings(post.Warnings),
	})
}

// nonNilWarnings makes an empty list serialize as [] rather than null.
func nonNilWarnings(list []bbcode.Warning) []bbcode.Warning {
	if list == nil {
		return []bbcode.Warning{}
	}
	return list
}
