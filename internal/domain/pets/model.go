package pets

import "time"

// Field identifica un campo opcional del perfil con su propio flag de visibilidad.
// @Enum description, whatsapp, location, instagram, gallery, address
type Field string

const (
	FieldDescription Field = "description"
	FieldWhatsApp    Field = "whatsapp"
	FieldLocation    Field = "location"
	FieldInstagram   Field = "instagram"
	FieldGallery     Field = "gallery"
	FieldAddress     Field = "address"
)

// OptionalFields en el orden en que se muestran en el formulario.
var OptionalFields = []Field{
	FieldDescription,
	FieldWhatsApp,
	FieldLocation,
	FieldInstagram,
	FieldGallery,
	FieldAddress,
}

// VisibilityColumn es el nombre de columna/campo JSON del flag, p.ej. "whatsapp_visibility".
func (f Field) VisibilityColumn() string {
	return string(f) + "_visibility"
}

func (f Field) Valid() bool {
	for _, o := range OptionalFields {
		if o == f {
			return true
		}
	}
	return false
}

// Visibility guarda un flag por campo opcional. El valor cero oculta todo.
type Visibility struct {
	Description bool
	WhatsApp    bool
	Location    bool
	Instagram   bool
	Gallery     bool
	Address     bool
}

// Contacto y datos descriptivos; todo lo que el dueño edita en el formulario.
type Details struct {
	Username     string // pet_unique_username, público y único
	Name         string
	MobileNumber string
	ImageURL     string

	Description string
	WhatsApp    string
	Location    string
	Instagram   string
	Gallery     string
	Address     string
}

// Pet es el perfil público de una mascota (tabla pet_profiles).
type Pet struct {
	ID          string
	OwnerUserID string

	Details
	Visibility Visibility

	CreatedAt time.Time
	UpdatedAt time.Time
}
