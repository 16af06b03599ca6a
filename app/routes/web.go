package routes

import (
	"github.com/SuperiorKe/sms-africas-talking/app/config"
	"github.com/SuperiorKe/sms-africas-talking/app/controllers"
	"github.com/SuperiorKe/sms-africas-talking/app/middlewares"

	"github.com/go-chi/chi/v5"
)

func RegisterWeb(r chi.Router, ctrl *controllers.WebController, cfg config.Config) {
	r.Get("/", ctrl.Index)
	r.Get("/chat", ctrl.ChatPage)
	r.Post("/chat", ctrl.Chat)
	r.Get("/chat_history", ctrl.HistoryDurable)

	r.Post("/api/chat", ctrl.APIChat)
	r.Get("/api/chat_history/{session_id}", ctrl.APIHistory)

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AdminAuth(cfg))
		gr.Post("/api/cleanup_sessions", ctrl.CleanupSessions)
	})
}
