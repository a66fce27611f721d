package presenter

import "github.com/gofiber/fiber/v2"

// The user routes answer with a {"msg": ...} envelope, the movie and
// watchlist routes with {"message": ...}; both shapes are part of the
// public API and kept distinct here.

type MessageResponse struct {
	Msg string `json:"msg"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Message(c *fiber.Ctx, status int, msg string) error {
	return JSON(c, status, MessageResponse{Msg: msg})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}
