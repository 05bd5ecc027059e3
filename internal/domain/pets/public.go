package pets

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PublicField es un campo visible del perfil público con su acción externa (si tiene).
type PublicField struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

// PublicProfile es lo único que ve quien abre /petprofile/{username}.
// Los campos opcionales aparecen solo si su flag está activo y no están vacíos.
type PublicProfile struct {
	Username string `json:"pet_unique_username"`
	Name     string `json:"pet_name"`
	ImageURL string `json:"pet_image_url,omitempty"`

	// Teléfono (acción "llamar"); sigue al flag de whatsapp.
	Phone *PublicField `json:"phone,omitempty"`

	Fields []PublicField `json:"fields"`
}

func NewPublicProfile(p Pet) PublicProfile {
	out := PublicProfile{
		Username: p.Username,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		Fields:   make([]PublicField, 0, len(OptionalFields)),
	}

	if p.Visibility.WhatsApp && p.MobileNumber != "" {
		out.Phone = &PublicField{
			Field: "mobile_number",
			Value: p.MobileNumber,
			URL:   DialURL(p.MobileNumber),
		}
	}

	for _, f := range OptionalFields {
		if !p.Shown(f) {
			continue
		}
		v := p.Value(f)
		out.Fields = append(out.Fields, PublicField{Field: f, Value: v, URL: ExternalURL(f, v)})
	}
	return out
}

// Field busca un campo visible; ok=false si está oculto.
func (pp PublicProfile) Field(f Field) (PublicField, bool) {
	for _, pf := range pp.Fields {
		if pf.Field == f {
			return pf, true
		}
	}
	return PublicField{}, false
}

// ExternalURL arma el link "abrir afuera" de cada campo. "" si el campo no tiene acción.
func ExternalURL(f Field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	switch f {
	case FieldInstagram:
		return "https://instagram.com/" + url.PathEscape(strings.TrimPrefix(value, "@"))
	case FieldWhatsApp:
		d := digits(value)
		if d == "" {
			return ""
		}
		return "https://wa.me/" + d
	case FieldAddress:
		return "https://www.google.com/maps/dir//" + url.PathEscape(value)
	case FieldLocation:
		return "https://www.google.com/maps?q=" + url.QueryEscape(value)
	case FieldGallery:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ""
		}
		return u.String()
	default:
		return ""
	}
}

func DialURL(mobile string) string {
	mobile = strings.TrimSpace(mobile)
	prefix := ""
	if strings.HasPrefix(mobile, "+") {
		prefix = "+"
	}
	d := digits(mobile)
	if d == "" {
		return ""
	}
	return "tel:" + prefix + d
}

// ShareLocationURL arma el deep link de WhatsApp con las coordenadas del visitante.
func ShareLocationURL(lat, lng float64) string {
	msg := fmt.Sprintf("Here's my current location: https://www.google.com/maps?q=%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64),
	)
	return "https://wa.me/?text=" + url.QueryEscape(msg)
}

// ValidCoordinates chequea rangos de latitud/longitud.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
