package pets

import (
	"strings"
)

// ContactCard genera el vCard 3.0 de "guardar contacto" (nombre + celular).
func ContactCard(p Pet) (filename string, body []byte) {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:3.0\r\n")
	b.WriteString("FN:" + escapeVCard(p.Name) + "\r\n")
	if p.MobileNumber != "" {
		b.WriteString("TEL;TYPE=CELL:" + escapeVCard(p.MobileNumber) + "\r\n")
	}
	b.WriteString("END:VCARD\r\n")

	return contactFilename(p.Name), []byte(b.String())
}

func escapeVCard(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		",", `\,`,
		";", `\;`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// contactFilename: "<pet_name>_contact.vcf" sin caracteres problemáticos para Content-Disposition.
func contactFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '"' || r == '\\' || r == '/' || r < 0x20:
			continue
		default:
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = "pet"
	}
	return base + "_contact.vcf"
}
