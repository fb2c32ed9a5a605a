package controller

import (
	"bytes"
	"html/template"
	"log"

	"github.com/gofiber/fiber/v2"

	"agiliza_backend/pkg/tracking"
	"agiliza_backend/pkg/web"
)

var (
	pageInjector  *tracking.Injector
	pageTemplates *template.Template
	pageBrand     string
)

func InitPageController(injector *tracking.Injector, brand string) error {
	templates, err := web.LoadTemplates()
	if err != nil {
		return err
	}

	pageInjector = injector
	pageTemplates = templates
	pageBrand = brand
	return nil
}

func LandingPage(c *fiber.Ctx) error {
	return renderPage(c, "landing.html", pageBrand)
}

func PrivacyPage(c *fiber.Ctx) error {
	return renderPage(c, "privacy.html", "Política de Privacidade")
}

func TermsPage(c *fiber.Ctx) error {
	return renderPage(c, "terms.html", "Termos de Uso")
}

func AdminLoginPage(c *fiber.Ctx) error {
	return renderPage(c, "admin_login.html", "Acesso Restrito")
}

func AdminDashboardPage(c *fiber.Ctx) error {
	return renderPage(c, "admin_dashboard.html", "Painel")
}

// renderPage executes the template with the tracking tags for this
// render. A tracking lookup can never fail the page: the injector falls
// back to its last known configuration.
func renderPage(c *fiber.Ctx, name, title string) error {
	data := web.PageData{
		Brand: pageBrand,
		Title: title,
		Head:  pageInjector.HeadHTML(),
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Could not render %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Erro interno")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
