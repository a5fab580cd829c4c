package pdf

import (
	"strings"

	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
)

// GiroCodePayload contenido EPC069-12 (versión 002) para transferencias SEPA por QR.
// Devuelve "" si falta el IBAN o el importe no es positivo.
func GiroCodePayload(company entity.Company, inv *entity.Invoice) string {
	iban := strings.ReplaceAll(company.IBAN, " ", "")
	if iban == "" || !inv.CommissionAmount.IsPositive() {
		return ""
	}
	name := company.Name
	if r := []rune(name); len(r) > 70 {
		name = string(r[:70])
	}
	lines := []string{
		"BCD",
		"002",
		"1", // UTF-8
		"SCT",
		strings.ReplaceAll(company.BIC, " ", ""),
		name,
		iban,
		"EUR" + inv.CommissionAmount.StringFixed(2),
		"", // purpose
		"", // referencia estructurada
		inv.InvoiceNumber,
	}
	return strings.Join(lines, "\n")
}
