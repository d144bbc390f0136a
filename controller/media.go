package controller

import (
	"context"
	"log/slog"
	"net/http"

	"makini-agent-backend/response"
	"makini-agent-backend/service/media"

	"github.com/gin-gonic/gin"
)

func GetUploadLink(c *gin.Context) {
	presignLink(c, media.PresignUpload)
}

func GetDownloadLink(c *gin.Context) {
	presignLink(c, media.PresignDownload)
}

func presignLink(c *gin.Context, presign func(ctx context.Context, objectName string) (*media.SignedLink, error)) {
	if !media.Enabled() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Response{
			Msg: ErrMediaDisabled.Error(),
		})
		return
	}

	objectName := c.Query("object")
	if objectName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	link, err := presign(c.Request.Context(), objectName)
	if err != nil {
		slog.Error(ErrGetPreSignedURL.Error(), "object", objectName, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetPreSignedURL.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: link})
}
