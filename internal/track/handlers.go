package track

import (
	"errors"
	"io"

	"github.com/Reubrecht/KairnGpx/internal/analysis"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/analyze", func(c *fiber.Ctx) error {
		var req AnalyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(req.Points) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "points required")
		}
		result, err := svc.Analyze(req.Points, req.Profiles)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}
		return c.JSON(result)
	})

	r.Post("/upload", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file required")
		}
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := svc.Upload(c.Context(), fh.Filename, data)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "track not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rec)
	})
}

// statusFor maps the typed analysis errors onto HTTP statuses: bad input is
// 400, tracks that cannot be analyzed are 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrMalformedPoint),
		errors.Is(err, analysis.ErrInvalidProfile):
		return fiber.StatusBadRequest
	case errors.Is(err, analysis.ErrInsufficientData),
		errors.Is(err, analysis.ErrTemporalOrder):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
