// Package export serializes the filtered lead mirror into the CSV layout
// the agency's spreadsheet workflow expects.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"agiliza_backend/internal/model"
)

// Header matches the spreadsheet the operators already use; column order
// is part of the contract.
var Header = []string{"Data", "Nome", "Email", "Telefone", "Empresa", "Plano", "Status", "Mensagem"}

// LeadsCSV renders one row per lead, dates in dd/mm/yyyy. Free-text
// columns (name, company, message) are always quoted; other columns only
// when they contain a comma, quote or newline. Quotes are doubled.
func LeadsCSV(leads []model.Lead) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteByte('\n')

	for _, lead := range leads {
		row := []string{
			field(lead.CreatedAt.Format("02/01/2006"), false),
			field(lead.Name, true),
			field(lead.Email, false),
			field(lead.Phone, false),
			field(lead.BusinessName, true),
			field(lead.Plan, false),
			field(string(lead.EffectiveStatus()), false),
			field(lead.Message, true),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// Filename follows leads_<brand-slug>_<ISO date>.csv.
func Filename(brand string, now time.Time) string {
	return fmt.Sprintf("leads_%s_%s.csv", slug.Make(brand), now.Format("2006-01-02"))
}

func field(value string, force bool) string {
	if force || strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
