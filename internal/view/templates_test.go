package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainulsyai/eko-hajj/internal/shared"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestNavMarksActiveEntry(t *testing.T) {
	active := func(path string) string {
		for _, item := range Nav(path) {
			if item.Active {
				return item.Label
			}
		}
		return ""
	}
	assert.Equal(t, "Beranda", active("/"))
	assert.Equal(t, "Data Pengisian", active("/forms/rice"))
	assert.Equal(t, "Laporan Otomatis", active("/reports"))
	assert.Equal(t, "Pengaturan", active("/settings"))
}

func TestPageReadsSession(t *testing.T) {
	sess := shared.NewSession()
	sess.SetUser("admin")
	sess.AddFlash(shared.FlashMessage{Kind: shared.FlashSuccess, Message: "ok"})
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	data := Page(req, shared.NewCSRFManager("secret"), "Laporan", nil)
	assert.Equal(t, "admin", data.User)
	require.NotNil(t, data.Flash)
	assert.Equal(t, "ok", data.Flash.Message)
	assert.NotEmpty(t, data.CSRFToken)
	assert.Equal(t, "/reports", data.CurrentPath)
}

func TestRenderLoginPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	require.NoError(t, engine.Render(rr, "pages/login.html", TemplateData{Title: "Masuk"}))
	assert.Contains(t, rr.Body.String(), "EKO-HAJJ")
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	assert.Error(t, engine.Render(httptest.NewRecorder(), "pages/missing.html", TemplateData{}))
}
