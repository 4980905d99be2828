package handler

import (
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/dto"
	"roadmap-checkup/internal/middleware"
	"roadmap-checkup/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	quizService service.QuizService
	leadService service.LeadService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, leadService service.LeadService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		leadService: leadService,
	}
}

func invalidBody() error {
	return domain.NewInvalidInputError("Request body is not valid JSON")
}

// StartQuiz godoc
// @Summary Start a quiz session
// @Description Creates a session on the profile step
// @Tags quiz
// @Produce json
// @Success 201 {object} dto.QuizStateResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	view, err := h.quizService.Start(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetQuiz godoc
// @Summary Get the current quiz step
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	view, err := h.quizService.Get(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// SubmitProfile godoc
// @Summary Continue from the profile step
// @Description Records gender and age (18-80) and moves to the exam choice
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ProfileRequest true "Profile"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quiz/{id}/profile [post]
func (h *QuizHandler) SubmitProfile(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	view, err := h.quizService.SubmitProfile(c.UserContext(), middleware.SessionID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// ChooseExam godoc
// @Summary Continue from the exam choice step
// @Description Full and regular exams are priced at both clinics; individual goes straight to results
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ExamChoiceRequest true "Exam type"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/{id}/exam [post]
func (h *QuizHandler) ChooseExam(c *fiber.Ctx) error {
	var req dto.ExamChoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	view, err := h.quizService.ChooseExam(c.UserContext(), middleware.SessionID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Back godoc
// @Summary Go back one step
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quiz/{id}/back [post]
func (h *QuizHandler) Back(c *fiber.Ctx) error {
	view, err := h.quizService.Back(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// UpdateContact godoc
// @Summary Edit the contact form
// @Description Only fields present in the body are changed
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ContactRequest true "Contact fields"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quiz/{id}/contact [patch]
func (h *QuizHandler) UpdateContact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	view, err := h.quizService.UpdateContact(c.UserContext(), middleware.SessionID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// SubmitLead godoc
// @Summary Send the request to the clinic manager
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quiz/{id}/submit [post]
func (h *QuizHandler) SubmitLead(c *fiber.Ctx) error {
	view, err := h.leadService.Submit(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Restart godoc
// @Summary Start the quiz over
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id}/restart [post]
func (h *QuizHandler) Restart(c *fiber.Ctx) error {
	view, err := h.quizService.Restart(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}
