// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type LeadNotificationData struct {
	LeadName     string
	LeadEmail    string
	LeadPhone    string
	BusinessName string
	Plan         string
	Message      string
	WhatsAppLink string
}

type WeeklySummaryData struct {
	Brand      string
	NewLeads   int64
	TotalLeads int64
	Since      time.Time
}

func NewEmailService(apiKey string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      "Agiliza <noreply@agilizamarketing.com.br>",
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend API error (%d): %s", resp.StatusCode, string(respBody))
	}

	log.Printf("Email sent to %s: %s", to, subject)
	return nil
}

// SendLeadNotificationEmail tells the agency inbox a new inquiry arrived.
func (s *EmailService) SendLeadNotificationEmail(to string, data LeadNotificationData) error {
	return s.sendTemplateEmail(
		to,
		fmt.Sprintf("Novo lead: %s", data.LeadName),
		"lead_notification.html",
		data,
	)
}

// SendWeeklyLeadSummary is the Monday morning recap mail.
func (s *EmailService) SendWeeklyLeadSummary(to string, data WeeklySummaryData) error {
	return s.sendTemplateEmail(
		to,
		"Resumo semanal de leads",
		"weekly_summary.html",
		data,
	)
}
