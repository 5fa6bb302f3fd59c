package api

import (
	"net/http"

	"github.com/Drolfothesgnir/bbcode/tagconf"
	"github.com/gin-gonic/gin"
)

type TagsResponse struct {
	Autolink bool              `json:"autolink"`
	Tags     []tagconf.TagSpec `json:"tags"`
}

// listTags describes the tags the service renders, for editors and help pages.
func (service *Service) listTags(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, TagsResponse{
		Autolink: service.parser.Autolink(),
		Tags:     tagconf.Specs(service.parser.Tags()),
	})
}
