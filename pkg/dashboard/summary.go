package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/performance"
	"github.com/railstat/railstat/pkg/util"

	iso8601 "github.com/senseyeio/duration"
)

func (server *Server) getSummary(c *fiber.Ctx) error {
	records, err := server.Store.Load()
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not load the status table",
		})
	}

	if windowQuery := c.Query("window"); windowQuery != "" {
		windowDuration, err := iso8601.ParseISO8601(windowQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter window should be an ISO8601 duration",
			})
		}

		// Shift backwards by the window to find the first service day
		// still inside it
		windowStart := negateDuration(windowDuration).Shift(time.Now())
		windowStartDate := windowStart.Format(autotrain.DateFormat)

		util.InPlaceFilter(&records, func(record autotrain.DelayRecord) bool {
			return record.Date >= windowStartDate
		})
	}

	summariesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, performance.Summarise(records, server.Directions))
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce summaries",
		})
	}

	return c.JSON(summariesReduced)
}

func negateDuration(d iso8601.Duration) iso8601.Duration {
	return iso8601.Duration{
		Y: -d.Y,
		M: -d.M,
		W: -d.W,
		D: -d.D,

		TH: -d.TH,
		TM: -d.TM,
		TS: -d.TS,
	}
}
