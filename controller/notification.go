package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"makini-agent-backend/dao"
	"makini-agent-backend/response"

	"github.com/gin-gonic/gin"
)

func GetNotifications(c *gin.Context) {
	notifications, err := dao.GetNotificationsByRecipient(c.GetString("user_id"))
	if err != nil {
		slog.Error(ErrGetNotifications.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetNotifications.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: notifications})
}

func MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		slog.Error(ErrParseRequest.Error(), "notification_id", c.Param("id"), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	if err := dao.MarkNotificationRead(c.GetString("user_id"), uint(id)); err != nil {
		slog.Error(ErrMarkNotification.Error(), "notification_id", id, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrMarkNotification.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}
