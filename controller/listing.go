package controller

import (
	"log/slog"
	"net/http"

	"makini-agent-backend/dao"
	"makini-agent-backend/model"
	"makini-agent-backend/request"
	"makini-agent-backend/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateListing(c *gin.Context) {
	var req request.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	listing := model.Listing{
		ID:                      uuid.New().String(),
		FornecedorID:            c.GetString("user_id"),
		Tipo:                    req.Tipo,
		Categoria:               req.Categoria,
		Titulo:                  req.Titulo,
		Descricao:               req.Descricao,
		CapacidadeEspecificacao: req.CapacidadeEspecificacao,
		NomeEmpresa:             req.NomeEmpresa,
		Preco:                   req.Preco,
		UnidadePreco:            req.UnidadePreco,
		Disponibilidade:         req.Disponibilidade,
		Localizacao:             req.Localizacao,
		ImagemURL:               req.ImagemURL,
	}
	if err := dao.CreateListing(&listing); err != nil {
		slog.Error(ErrCreateListing.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateListing.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{Data: listing})
}

func GetListings(c *gin.Context) {
	listings, err := dao.GetListings(dao.ListingQuery{
		Categoria:   c.Query("categoria"),
		Localizacao: c.Query("localizacao"),
		Tipo:        c.Query("tipo"),
	})
	if err != nil {
		slog.Error(ErrGetListings.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetListings.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: listings})
}

func GetListing(c *gin.Context) {
	listing, err := dao.GetListingByID(c.Param("id"))
	if err != nil {
		slog.Error(ErrGetListings.Error(), "listing_id", c.Param("id"), "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrGetListings.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: listing})
}

func GetMyListings(c *gin.Context) {
	listings, err := dao.GetListingsByFornecedor(c.GetString("user_id"))
	if err != nil {
		slog.Error(ErrGetListings.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetListings.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: listings})
}

func DeleteListing(c *gin.Context) {
	if err := dao.DeleteListing(c.GetString("user_id"), c.Param("id")); err != nil {
		slog.Error(ErrDeleteListing.Error(), "listing_id", c.Param("id"), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteListing.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}
