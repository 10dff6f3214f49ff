package dashboard

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/util"
)

func (server *Server) listRecords(c *fiber.Ctx) error {
	records, err := server.Store.Load()
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not load the status table",
		})
	}

	if trainQuery := c.Query("train"); trainQuery != "" {
		trainNumber, err := strconv.Atoi(trainQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter train should be an integer",
			})
		}

		util.InPlaceFilter(&records, func(record autotrain.DelayRecord) bool {
			return record.TrainNumber == trainNumber
		})
	}

	recordsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, records)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce records",
		})
	}

	return c.JSON(recordsReduced)
}
