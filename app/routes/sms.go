package routes

import (
	"github.com/SuperiorKe/sms-africas-talking/app/config"
	"github.com/SuperiorKe/sms-africas-talking/app/controllers"
	"github.com/SuperiorKe/sms-africas-talking/app/middlewares"

	"github.com/go-chi/chi/v5"
)

func RegisterSMS(r chi.Router, ctrl *controllers.SMSController, cfg config.Config) {
	// Gateway webhook stays open; the gateway has no auth header to give us.
	r.Post("/sms_callback", ctrl.HandleCallback)

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AdminAuth(cfg))
		gr.Post("/send_sms", ctrl.SendManual)
		gr.Get("/test_sms", ctrl.TestSMS)
		gr.Post("/test_sms", ctrl.TestSMS)
	})
}
