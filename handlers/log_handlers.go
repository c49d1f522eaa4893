package handlers

import (
	"github.com/KMuszynski/Cloud-Computing/repositories"

	"github.com/gofiber/fiber/v2"
)

type LogHandlers struct {
	logRepo *repositories.LogRepository
}

func NewLogHandlers(logRepo *repositories.LogRepository) *LogHandlers {
	return &LogHandlers{logRepo: logRepo}
}

// GetLogs handles GET /get_logs. The report is joined with each entry's user
// identity. TODO: restrict this to admin accounts once a role model exists.
func (h *LogHandlers) GetLogs(c *fiber.Ctx) error {
	rows, err := h.logRepo.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list logs"})
	}

	return c.JSON(rows)
}
