package controller

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/datatypes"

	"agiliza_backend/internal/model"
	"agiliza_backend/internal/registry"
	"agiliza_backend/internal/repository"
	"agiliza_backend/pkg/email"
	"agiliza_backend/pkg/export"
	"agiliza_backend/pkg/plans"
	"agiliza_backend/pkg/tracking"
	"agiliza_backend/pkg/utils/whatsapp"
)

type LeadInput struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	BusinessName string            `json:"businessName"`
	Plan         string            `json:"plan"`
	Message      string            `json:"message"`
	Metadata     map[string]string `json:"metadata"`
}

// LeadResponse decorates a lead with its derived outreach link.
type LeadResponse struct {
	model.Lead
	WhatsAppLink string `json:"whatsappLink"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

var (
	leadStore       repository.LeadStore
	leadRegistry    *registry.Registry
	leadSink        tracking.Sink
	leadBrand       string
	leadNotifyEmail string
)

func InitLeadController(store repository.LeadStore, reg *registry.Registry, sink tracking.Sink, brand, notifyEmail string) {
	leadStore = store
	leadRegistry = reg
	leadSink = sink
	leadBrand = brand
	leadNotifyEmail = notifyEmail
}

// CreateLead is the public intake endpoint. Exactly one record is
// written per valid submission; tracking and email side effects are
// best-effort and never fail the request.
func CreateLead(c *fiber.Ctx) error {
	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if errs := validateLeadInput(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}

	lead := model.Lead{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		BusinessName: strings.TrimSpace(input.BusinessName),
		Plan:         input.Plan,
		Message:      input.Message,
		Status:       model.LeadStatusNew,
	}

	if len(input.Metadata) > 0 {
		if raw, err := json.Marshal(input.Metadata); err == nil {
			lead.Metadata = datatypes.JSON(raw)
		}
	}

	if err := leadStore.Create(&lead); err != nil {
		log.Printf("Could not create lead: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ocorreu um erro ao enviar. Tente novamente.",
		})
	}

	// Conversion events; a missing or failing tracker is not the
	// visitor's problem.
	leadSink.LeadSubmitted(lead.Plan, plans.ConversionValue(lead.Plan))

	if email.GlobalEmailService != nil && leadNotifyEmail != "" {
		err := email.GlobalEmailService.SendLeadNotificationEmail(leadNotifyEmail, email.LeadNotificationData{
			LeadName:     lead.Name,
			LeadEmail:    lead.Email,
			LeadPhone:    lead.Phone,
			BusinessName: lead.BusinessName,
			Plan:         lead.Plan,
			Message:      lead.Message,
			WhatsAppLink: whatsapp.Link(lead.Phone),
		})
		if err != nil {
			log.Printf("Could not send lead notification email: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      lead.ID,
		"message": "Recebemos seu contato! Em breve nossa equipe entrará em contato pelo WhatsApp.",
	})
}

func validateLeadInput(input *LeadInput) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "Nome é obrigatório"
	}
	if strings.TrimSpace(input.Phone) == "" {
		errs["phone"] = "WhatsApp é obrigatório"
	}

	emailValue := strings.TrimSpace(input.Email)
	if emailValue == "" {
		errs["email"] = "Email é obrigatório"
	} else if !emailPattern.MatchString(emailValue) {
		errs["email"] = "Email inválido"
	}

	if input.Plan != "" && !plans.IsValid(input.Plan) {
		errs["plan"] = "Plano inválido"
	}

	return errs
}

// GetLeads serves the dashboard list from the live mirror; the status
// filter never triggers a store read.
func GetLeads(c *fiber.Ctx) error {
	status := c.Query("status", registry.FilterAll)
	if !validFilter(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status filter",
		})
	}

	leads := leadRegistry.Snapshot(status)

	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, LeadResponse{
			Lead:         lead,
			WhatsAppLink: whatsapp.Link(lead.Phone),
		})
	}

	return c.JSON(fiber.Map{
		"leads": items,
		"total": len(items),
	})
}

func validFilter(status string) bool {
	return status == registry.FilterAll || model.LeadStatus(status).IsValid()
}

func UpdateLeadStatus(c *fiber.Ctx) error {
	leadID := c.Params("id")

	input := struct {
		Status string `json:"status"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if !model.LeadStatus(input.Status).IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":          "Invalid status value",
			"valid_statuses": model.ValidLeadStatuses,
		})
	}

	lead, err := leadStore.UpdateStatus(leadID, model.LeadStatus(input.Status))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lead not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lead status updated successfully",
		"lead":    lead,
	})
}

// DeleteLead is irreversible, so it refuses to run without the explicit
// confirm flag the dashboard sends after its confirmation dialog.
func DeleteLead(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":  "confirmation_required",
			"error": "Exclusão requer confirmação. Envie confirm=true.",
		})
	}

	if err := leadStore.Delete(c.Params("id")); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lead not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao excluir lead.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lead excluído.",
	})
}

// ExportLeads serializes the currently filtered mirror to CSV.
func ExportLeads(c *fiber.Ctx) error {
	status := c.Query("status", registry.FilterAll)
	if !validFilter(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status filter",
		})
	}

	data := export.LeadsCSV(leadRegistry.Snapshot(status))
	filename := export.Filename(leadBrand, time.Now())

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// StreamLeads pushes registry changes to the dashboard over SSE. One
// subscription per connection, released when the client goes away.
func StreamLeads(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events, cancel := leadRegistry.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case evt, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(evt)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-ticker.C:
				// Keepalive doubles as disconnect detection.
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
