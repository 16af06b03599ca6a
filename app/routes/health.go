package routes

import (
	"github.com/SuperiorKe/sms-africas-talking/app/controllers"

	"github.com/go-chi/chi/v5"
)

func RegisterHealth(r chi.Router, ctrl *controllers.HealthController) {
	r.Get("/health", ctrl.HealthCheck)
}
