package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware logs every request with method, path, status and latency
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		method := c.Method()

		logger.Printf("%s %s%s%s %s %s%d%s %v",
			c.IP(),
			getMethodColor(method), method, "\033[0m",
			c.Path(),
			getStatusColor(status), status, "\033[0m",
			time.Since(start),
		)

		return err
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // red
	case status >= 400:
		return "\033[33m" // yellow
	case status >= 300:
		return "\033[36m" // cyan
	case status >= 200:
		return "\033[32m" // green
	default:
		return "\033[37m"
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m" // blue
	case "POST":
		return "\033[33m" // yellow
	case "PUT":
		return "\033[36m" // cyan
	case "DELETE":
		return "\033[31m" // red
	default:
		return "\033[37m"
	}
}
