package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"makini-agent-backend/dao"
	"makini-agent-backend/model"
	"makini-agent-backend/request"
	"makini-agent-backend/response"
	"makini-agent-backend/service/notification"

	"github.com/gin-gonic/gin"
)

func CreateReserva(c *gin.Context) {
	var req request.CreateReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	listing, err := dao.GetListingByID(req.AnuncioID)
	if err != nil {
		slog.Error(ErrCreateReserva.Error(), "anuncio_id", req.AnuncioID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrCreateReserva.Error(),
		})
		return
	}

	reserva := model.Reserva{
		AgricultorID: c.GetString("user_id"),
		FornecedorID: listing.FornecedorID,
		AnuncioID:    listing.ID,
		DataInicio:   req.DataInicio,
		DuracaoDias:  req.DuracaoDias,
		Contexto:     req.Contexto,
		Status:       model.ReservaStatusPendente,
	}
	if err := dao.CreateReserva(&reserva); err != nil {
		slog.Error(ErrCreateReserva.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateReserva.Error(),
		})
		return
	}

	publishReservaEvent(c, notification.TagReservaCriada, &reserva, listing.Titulo)

	c.JSON(http.StatusCreated, response.Response{Data: reserva})
}

func GetMyReservas(c *gin.Context) {
	userID := c.GetString("user_id")

	var (
		reservas []model.Reserva
		err      error
	)
	if c.GetString("role") == model.RoleFornecedor {
		reservas, err = dao.GetReservasByFornecedor(userID)
	} else {
		reservas, err = dao.GetReservasByAgricultor(userID)
	}
	if err != nil {
		slog.Error(ErrGetReservas.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetReservas.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: reservas})
}

func UpdateReservaStatus(c *gin.Context) {
	var req request.UpdateReservaStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		slog.Error(ErrParseRequest.Error(), "reserva_id", c.Param("id"), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	fornecedorID := c.GetString("user_id")
	if err := dao.UpdateReservaStatus(fornecedorID, uint(id), req.Status); err != nil {
		slog.Error(ErrUpdateReservaStatus.Error(), "reserva_id", id, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateReservaStatus.Error(),
		})
		return
	}

	reserva, err := dao.GetReservaByID(uint(id))
	if err != nil {
		slog.Error(ErrGetReservas.Error(), "reserva_id", id, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetReservas.Error(),
		})
		return
	}

	publishReservaEvent(c, notification.TagReservaDecidida, reserva, "")

	c.JSON(http.StatusOK, response.Response{Data: reserva})
}

func publishReservaEvent(c *gin.Context, tag string, reserva *model.Reserva, titulo string) {
	if !notification.Enabled() {
		return
	}
	event := notification.ReservaEvent{
		ReservaID:    reserva.ID,
		AnuncioID:    reserva.AnuncioID,
		Titulo:       titulo,
		AgricultorID: reserva.AgricultorID,
		FornecedorID: reserva.FornecedorID,
		DataInicio:   reserva.DataInicio,
		DuracaoDias:  reserva.DuracaoDias,
		Status:       reserva.Status,
	}
	if err := notification.PublishReservaEvent(c.Request.Context(), tag, event); err != nil {
		slog.Error("Failed to publish reserva event", "tag", tag, "reserva_id", reserva.ID, "err", err)
	}
}
