package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// HeaderChartDegraded is set on responses whose chart was computed from a
// substituted instant.
const HeaderChartDegraded = "X-Chart-Degraded"

// ComputeChartHandler computes a chart from query parameters without
// storing it.
func ComputeChartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := chartRequestFromQuery(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		chart, err := deps.Charts.Compute(c.UserContext(), req)
		if err != nil {
			return errFromService(c, err)
		}
		if chart.Degraded() {
			c.Set(HeaderChartDegraded, "true")
			c.Set("Cache-Control", "no-store")
		}
		return c.JSON(chart)
	}
}

// CreateChartHandler computes a chart from a JSON body and stores it.
func CreateChartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req domain.ChartRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body: "+err.Error())
		}

		rec, err := deps.Charts.Create(c.UserContext(), req)
		if err != nil {
			return errFromService(c, err)
		}
		if rec.Chart.Degraded() {
			c.Set(HeaderChartDegraded, "true")
		}
		c.Location("/v1/charts/" + rec.ID)
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// GetChartHandler returns a stored chart.
func GetChartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := deps.Charts.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		if rec.Chart.Degraded() {
			c.Set(HeaderChartDegraded, "true")
		}
		return c.JSON(rec)
	}
}

// ListChartsHandler returns stored charts, newest first.
func ListChartsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset, limit := parsePage(c)
		charts, total, err := deps.Charts.List(c.UserContext(), offset, limit)
		if err != nil {
			return errFromService(c, err)
		}
		if charts == nil {
			charts = []domain.ChartRecord{}
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: charts, Pagination: pg})
	}
}

func chartRequestFromQuery(c *fiber.Ctx) (domain.ChartRequest, error) {
	// An absent date is left to the time resolver, which degrades the chart.
	req := domain.ChartRequest{
		Date: c.Query("date"),
		Time: c.Query("time"),
		Zone: c.Query("zone"),
	}

	lat, err := queryCoord(c, "lat")
	if err != nil {
		return req, err
	}
	lon, err := queryCoord(c, "lon")
	if err != nil {
		return req, err
	}
	req.Observer = domain.Observer{Latitude: lat, Longitude: lon}
	return req, nil
}

func queryCoord(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" query parameter is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a number")
	}
	return v, nil
}
