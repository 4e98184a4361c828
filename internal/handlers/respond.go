package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"solestore/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondData sends the uniform success envelope.
func respondData(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// respondError translates any domain error into the uniform
// {success:false, message, errors:[]} envelope with its taxonomy
// status code. Unexpected errors are logged and masked as 500s.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.StatusCode(err)
	message := err.Error()
	errs := []string{}

	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) && apiErr.Errors != nil {
		errs = apiErr.Errors
	}

	if status == http.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		if !errors.As(err, &apiErr) {
			message = "Internal Server Error"
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

// validationMessages flattens validator errors into the envelope's
// errors list.
func validationMessages(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return messages
}

// currentUserID reads the authenticated user's ID set by the JWT
// middleware.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
