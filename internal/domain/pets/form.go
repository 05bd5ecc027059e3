package pets

type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Form es el estado en curso del formulario del gestor de perfiles.
// Nada de lo que se haga aquí toca el backend hasta Service.Submit.
type Form struct {
	Mode       FormMode
	ID         string // solo en modo edit
	Details    Details
	Visibility Visibility
}

// NewCreateForm: campos vacíos y todos los flags en false.
func NewCreateForm() Form {
	return Form{Mode: FormCreate}
}

// NewEditForm precarga valores y flags actuales del perfil.
func NewEditForm(p Pet) Form {
	return Form{
		Mode:       FormEdit,
		ID:         p.ID,
		Details:    p.Details,
		Visibility: p.Visibility,
	}
}

func (f Form) Editing() bool {
	return f.Mode == FormEdit
}

// Toggle invierte el flag de visibilidad de un campo opcional.
func (f *Form) Toggle(field Field) {
	f.Visibility = f.Visibility.Set(field, !f.Visibility.Get(field))
}

// SetImageURL guarda la URL pública devuelta por un upload exitoso.
// Si el upload falla simplemente no se llama, y la imagen previa queda.
func (f *Form) SetImageURL(url string) {
	f.Details.ImageURL = url
}
