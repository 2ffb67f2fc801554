package helper

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"artcc_backend/internals/apperr"
)

// Every endpoint answers with the same envelope:
//   {statusCode, message, data}
// and list endpoints with:
//   {statusCode, resultCount, totalCount, message, data}

func JsonSuccess(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"statusCode": code,
		"message":    message,
		"data":       data,
	})
}

func JsonOK(c *fiber.Ctx, message string, data interface{}) error {
	return JsonSuccess(c, fiber.StatusOK, message, data)
}

func JsonCreated(c *fiber.Ctx, message string, data interface{}) error {
	return JsonSuccess(c, fiber.StatusCreated, message, data)
}

func JsonList(c *fiber.Ctx, message string, resultCount, totalCount int, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"statusCode":  fiber.StatusOK,
		"resultCount": resultCount,
		"totalCount":  totalCount,
		"message":     message,
		"data":        data,
	})
}

func JsonNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"statusCode": fiber.StatusNotFound,
		"message":    message,
	})
}

func JsonValidationFailure(c *fiber.Ctx, failures []apperr.FieldFailure) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"statusCode": fiber.StatusBadRequest,
		"message":    "Validation failure",
		"data":       failures,
	})
}

func JsonUnauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"statusCode": fiber.StatusUnauthorized,
		"message":    "Unauthorized",
	})
}

func JsonForbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"statusCode": fiber.StatusForbidden,
		"message":    message,
	})
}

// JsonServerError logs the real error and answers with an opaque
// correlation id only.
func JsonServerError(c *fiber.Ctx, err error) error {
	id := uuid.NewString()
	log.Printf("[ERROR] id=%s %s %s: %v", id, c.Method(), c.OriginalURL(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"statusCode": fiber.StatusInternalServerError,
		"message":    "An error has occurred",
		"data":       id,
	})
}

// JsonFromError maps a typed domain error onto the matching status.
func JsonFromError(c *fiber.Ctx, err error) error {
	if apperr.IsNotFound(err) {
		return JsonNotFound(c, err.Error())
	}
	if ve, ok := apperr.AsValidation(err); ok {
		return JsonValidationFailure(c, ve.Failures)
	}
	if apperr.IsForbidden(err) {
		return JsonForbidden(c, err.Error())
	}
	return JsonServerError(c, err)
}
