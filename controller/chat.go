package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"makini-agent-backend/dao"
	"makini-agent-backend/request"
	"makini-agent-backend/response"
	"makini-agent-backend/service/agent"
	"makini-agent-backend/service/titling"
	"makini-agent-backend/utils"

	"github.com/gin-gonic/gin"
)

// AgentRegistry guarda as sessões de conversa abertas; é ligado no
// arranque ao driver do modelo.
var AgentRegistry *agent.Registry

func AgentChat(c *gin.Context) {
	utils.SetSSEHeaders(c)

	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrParseRequest.Error())
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	email := c.GetString("email")
	if _, err := dao.GetSessionByID(email, req.SessionID); err != nil {
		slog.Error(ErrSessionNotFound.Error(), "session_id", req.SessionID, "err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrSessionNotFound.Error())
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	sess, created := AgentRegistry.Get(req.SessionID)
	if created {
		if err := hydrateSession(sess, req.SessionID); err != nil {
			slog.Error(ErrGetSessionMessages.Error(), "session_id", req.SessionID, "err", err)
			utils.SendSSEMessage(c, utils.EventError, ErrGetSessionMessages.Error())
			utils.SendSSEMessage(c, utils.EventDone, "")
			return
		}
	}

	// O contexto do pedido é cancelado quando o cliente fecha a ligação;
	// a troca em curso termina com ele.
	turn, cta, err := sess.SendMessage(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) || errors.Is(err, agent.ErrExchangeInFlight) {
			utils.SendSSEMessage(c, utils.EventError, err.Error())
			utils.SendSSEMessage(c, utils.EventDone, "")
			return
		}

		// A sessão já acrescentou o turno de desculpas; persiste a
		// troca e entrega-o como resposta final.
		slog.Error(ErrCallAgent.Error(), "session_id", req.SessionID, "err", err)
		apology := lastAssistantContent(sess)
		persistExchange(req.SessionID, req.Query, apology, nil)
		utils.SendSSEMessage(c, utils.EventFinalAnswer, apology)
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	var action json.RawMessage
	if cta != nil {
		action, _ = json.Marshal(cta)
	}
	persistExchange(req.SessionID, req.Query, turn.Content, action)

	utils.SendSSEMessage(c, utils.EventFinalAnswer, turn.Content)
	if cta != nil {
		utils.SendSSEMessage(c, utils.EventCTA, cta)
	}
	utils.SendSSEMessage(c, utils.EventDone, "")

	if titling.Instance != nil {
		titling.Instance.Register(titling.TitleTask{
			SessionID: req.SessionID,
			Query:     req.Query,
			Answer:    turn.Content,
		})
	}
}

// OpenChat abre a sessão em memória e semeia a mensagem de boas-vindas
// quando a conversa ainda não tem turnos.
func OpenChat(c *gin.Context) {
	email := c.GetString("email")
	sessionID := c.Param("id")
	if _, err := dao.GetSessionByID(email, sessionID); err != nil {
		slog.Error(ErrSessionNotFound.Error(), "session_id", sessionID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrSessionNotFound.Error(),
		})
		return
	}

	sess, created := AgentRegistry.Get(sessionID)
	if created {
		if err := hydrateSession(sess, sessionID); err != nil {
			slog.Error(ErrGetSessionMessages.Error(), "session_id", sessionID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrGetSessionMessages.Error(),
			})
			return
		}
	}

	hadTurns := len(sess.Snapshot().Messages) > 0
	if _, _, err := sess.Open(c.Request.Context(), ""); err != nil {
		slog.Error(ErrCallAgent.Error(), "session_id", sessionID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCallAgent.Error(),
		})
		return
	}

	snap := sess.Snapshot()
	if !hadTurns && len(snap.Messages) > 0 {
		if err := dao.AppendMessage(sessionID, agent.RoleAssistant, snap.Messages[0].Content, nil); err != nil {
			slog.Error("Failed to persist welcome message", "session_id", sessionID, "err", err)
		}
	}

	c.JSON(http.StatusOK, response.Response{Data: snap})
}

func hydrateSession(sess *agent.Session, sessionID string) error {
	stored, err := dao.GetMessagesBySessionID(sessionID)
	if err != nil {
		return err
	}
	turns := make([]agent.Turn, 0, len(stored))
	for _, m := range stored {
		turns = append(turns, agent.Turn{
			ID:      strconv.FormatUint(uint64(m.ID), 10),
			Role:    m.Role,
			Content: m.Content,
		})
	}
	sess.Hydrate(turns)
	return nil
}

func persistExchange(sessionID, query, answer string, action json.RawMessage) {
	if err := dao.AppendMessage(sessionID, agent.RoleUser, query, nil); err != nil {
		slog.Error("Failed to persist user message", "session_id", sessionID, "err", err)
	}
	if err := dao.AppendMessage(sessionID, agent.RoleAssistant, answer, action); err != nil {
		slog.Error("Failed to persist assistant message", "session_id", sessionID, "err", err)
	}
}

func lastAssistantContent(sess *agent.Session) string {
	snap := sess.Snapshot()
	for i := len(snap.Messages) - 1; i >= 0; i-- {
		if snap.Messages[i].Role == agent.RoleAssistant {
			return snap.Messages[i].Content
		}
	}
	return ""
}
