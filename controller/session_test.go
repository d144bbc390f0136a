package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"makini-agent-backend/dao"
	"makini-agent-backend/model"
	"makini-agent-backend/response"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSessionDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Session{}, &model.Message{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	dao.DB = db
}

func messagesRequest(email, sessionID string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/session/"+sessionID+"/messages", nil)
	c.Params = gin.Params{{Key: "id", Value: sessionID}}
	c.Set("email", email)

	GetSessionMessages(c)
	return w
}

func TestGetSessionMessagesOwnership(t *testing.T) {
	setupSessionDB(t)

	session := model.Session{
		UserEmail: "dono@makini.ao",
		SessionID: "sessao-1",
		Title:     model.DefaultSessionTitle,
	}
	if err := dao.DB.Create(&session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := dao.AppendMessage("sessao-1", "assistant", "olá", nil); err != nil {
		t.Fatalf("failed to append message: %v", err)
	}
	if err := dao.AppendMessage("sessao-1", "user", "procuro um trator", nil); err != nil {
		t.Fatalf("failed to append message: %v", err)
	}

	// Só o dono da sessão lê as mensagens; para os restantes o id não
	// existe.
	if w := messagesRequest("intruso@makini.ao", "sessao-1"); w.Code != http.StatusNotFound {
		t.Errorf("other user: status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if w := messagesRequest("dono@makini.ao", "sessao-2"); w.Code != http.StatusNotFound {
		t.Errorf("unknown session: status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w := messagesRequest("dono@makini.ao", "sessao-1")
	if w.Code != http.StatusOK {
		t.Fatalf("owner: status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Data response.GetSessionMessagesResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Data.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(resp.Data.Messages))
	}
	if resp.Data.Messages[1].Content != "procuro um trator" {
		t.Errorf("unexpected last message: %+v", resp.Data.Messages[1])
	}
}
