package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"agiliza_backend/internal/model"
	"agiliza_backend/internal/repository"
)

type DashboardStats struct {
	TotalLeads   int64                      `json:"total_leads"`
	StatusCounts map[model.LeadStatus]int64 `json:"status_counts"`
	DailyStats   []DailyStat                `json:"daily_stats"`
}

type DailyStat struct {
	Date     string `json:"date"`
	NewLeads int64  `json:"new_leads"`
}

var statsStore repository.LeadStore

func InitStatsController(store repository.LeadStore) {
	statsStore = store
}

// GetDashboardStats summarizes the pipeline for the admin dashboard.
func GetDashboardStats(c *fiber.Ctx) error {
	var stats DashboardStats

	total, err := statsStore.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch stats",
		})
	}
	stats.TotalLeads = total

	counts, err := statsStore.CountByStatus()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch stats",
		})
	}
	stats.StatusCounts = counts

	// Last 7 days, oldest first.
	now := time.Now()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

		count, err := statsStore.CountBetween(start, start.Add(24*time.Hour))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not fetch stats",
			})
		}

		stats.DailyStats = append(stats.DailyStats, DailyStat{
			Date:     start.Format("2006-01-02"),
			NewLeads: count,
		})
	}

	return c.JSON(stats)
}
