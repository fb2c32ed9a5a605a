// pkg/cron/lead_summary.go

package cron

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"agiliza_backend/internal/repository"
	"agiliza_backend/pkg/email"
)

var (
	lastRunTime time.Time
	mutex       sync.Mutex
)

// InitLeadSummaryCron mails the agency a weekly lead recap, Mondays at
// 08:00. Failures are logged and retried on the next tick only.
func InitLeadSummaryCron(store repository.LeadStore, notifyEmail string) {
	if notifyEmail == "" {
		log.Println("NOTIFY_EMAIL not set, lead summary cron disabled")
		return
	}

	c := cron.New()

	_, err := c.AddFunc("0 8 * * 1", func() {
		mutex.Lock()
		defer mutex.Unlock()

		if time.Since(lastRunTime) < 23*time.Hour {
			log.Printf("Lead summary already sent today, skipping...")
			return
		}

		sendWeeklyLeadSummary(store, notifyEmail)
		lastRunTime = time.Now()
	})

	if err != nil {
		log.Printf("Could not initialize lead summary cron: %v", err)
		return
	}

	c.Start()
	log.Printf("Lead summary cron initialized successfully")
}

func sendWeeklyLeadSummary(store repository.LeadStore, to string) {
	if email.GlobalEmailService == nil {
		log.Printf("Email service not initialized, skipping lead summary")
		return
	}

	since := time.Now().AddDate(0, 0, -7)

	newLeads, err := store.CountSince(since)
	if err != nil {
		log.Printf("Error counting weekly leads: %v", err)
		return
	}

	totalLeads, err := store.Count()
	if err != nil {
		log.Printf("Error counting total leads: %v", err)
		return
	}

	err = email.GlobalEmailService.SendWeeklyLeadSummary(to, email.WeeklySummaryData{
		Brand:      "Agiliza Marketing Digital",
		NewLeads:   newLeads,
		TotalLeads: totalLeads,
		Since:      since,
	})
	if err != nil {
		log.Printf("Error sending weekly lead summary to %s: %v", to, err)
	} else {
		log.Printf("Weekly lead summary sent to %s (new: %d, total: %d)", to, newLeads, totalLeads)
	}
}
