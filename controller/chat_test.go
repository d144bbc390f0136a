package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// A troca do chat corre sobre c.Request.Context(): o gin por omissão
// (sem ContextWithFallback) devolve um canal nil em c.Done(), pelo que o
// cancelamento ao fechar a ligação só chega pelo contexto do pedido.
func TestChatExchangeContextFollowsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var exchangeDone <-chan struct{}
	r := gin.New()
	r.POST("/chat", func(c *gin.Context) {
		exchangeDone = c.Request.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodPost, "/chat", nil).WithContext(ctx)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if exchangeDone == nil {
		t.Fatal("exchange context has no done channel; client disconnect would never abort it")
	}
	select {
	case <-exchangeDone:
		t.Fatal("exchange context canceled before the request was")
	default:
	}

	cancel()
	select {
	case <-exchangeDone:
	default:
		t.Fatal("request cancellation did not reach the exchange context")
	}
}
