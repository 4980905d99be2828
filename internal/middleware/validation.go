package middleware

import (
	"roadmap-checkup/internal/validation"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	SessionIDKey   = "validated_session_id"
	ProgramCodeKey = "validated_program_code"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID checks the :id path parameter of quiz routes.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateSessionID(id); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(SessionIDKey, id)
		return c.Next()
	}
}

// ValidateProgramCode checks the :code path parameter. Codes are matched
// case-insensitively and stored upper-cased.
func (vm *ValidationMiddleware) ValidateProgramCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
		if errors := vm.validator.ValidateProgramCode(code); len(errors) > 0 {
			return errors
		}
		c.Locals(ProgramCodeKey, code)
		return c.Next()
	}
}

// SessionID returns the session id stored by ValidateSessionID.
func SessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(SessionIDKey).(string); ok {
		return id
	}
	return c.Params("id")
}

// ProgramCode returns the program code stored by ValidateProgramCode.
func ProgramCode(c *fiber.Ctx) string {
	if code, ok := c.Locals(ProgramCodeKey).(string); ok {
		return code
	}
	return strings.ToUpper(c.Params("code"))
}
