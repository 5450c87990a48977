// Package apiresponse standardizes the JSON envelope every endpoint
// returns: {success, data|results, message?, error?}.
package apiresponse

import "github.com/gofiber/fiber/v2"

// OK writes a 200 envelope around data.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": data})
}

// Created writes a 201 envelope around data.
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// Message writes a 200 envelope with only a message.
func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": message})
}

// Err writes an error envelope with the given status.
func Err(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}
