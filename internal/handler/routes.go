package handler

import (
	"roadmap-checkup/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz and catalog endpoints under router. The
// catalog reload needs reloadToken as a bearer token.
func RegisterRoutes(router fiber.Router, quiz *QuizHandler, catalog *CatalogHandler, reloadToken string) {
	vm := middleware.NewValidationMiddleware()

	router.Get("/catalog/status", catalog.GetStatus)
	router.Post("/catalog/reload", middleware.AdminOnly(reloadToken), catalog.Reload)
	router.Get("/programs/:code", vm.ValidateProgramCode(), catalog.GetProgram)

	router.Post("/quiz", quiz.StartQuiz)

	id := vm.ValidateSessionID()
	router.Get("/quiz/:id", id, quiz.GetQuiz)
	router.Post("/quiz/:id/profile", id, quiz.SubmitProfile)
	router.Post("/quiz/:id/exam", id, quiz.ChooseExam)
	router.Post("/quiz/:id/back", id, quiz.Back)
	router.Patch("/quiz/:id/contact", id, quiz.UpdateContact)
	router.Post("/quiz/:id/submit", id, quiz.SubmitLead)
	router.Post("/quiz/:id/restart", id, quiz.Restart)
}
