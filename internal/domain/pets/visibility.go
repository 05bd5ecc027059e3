package pets

func (v Visibility) Get(f Field) bool {
	switch f {
	case FieldDescription:
		return v.Description
	case FieldWhatsApp:
		return v.WhatsApp
	case FieldLocation:
		return v.Location
	case FieldInstagram:
		return v.Instagram
	case FieldGallery:
		return v.Gallery
	case FieldAddress:
		return v.Address
	default:
		return false
	}
}

// Set devuelve una copia con el flag de f en value. Campos desconocidos no cambian nada.
func (v Visibility) Set(f Field, value bool) Visibility {
	switch f {
	case FieldDescription:
		v.Description = value
	case FieldWhatsApp:
		v.WhatsApp = value
	case FieldLocation:
		v.Location = value
	case FieldInstagram:
		v.Instagram = value
	case FieldGallery:
		v.Gallery = value
	case FieldAddress:
		v.Address = value
	}
	return v
}

// Value devuelve el contenido de un campo opcional.
func (d Details) Value(f Field) string {
	switch f {
	case FieldDescription:
		return d.Description
	case FieldWhatsApp:
		return d.WhatsApp
	case FieldLocation:
		return d.Location
	case FieldInstagram:
		return d.Instagram
	case FieldGallery:
		return d.Gallery
	case FieldAddress:
		return d.Address
	default:
		return ""
	}
}

func (d Details) With(f Field, value string) Details {
	switch f {
	case FieldDescription:
		d.Description = value
	case FieldWhatsApp:
		d.WhatsApp = value
	case FieldLocation:
		d.Location = value
	case FieldInstagram:
		d.Instagram = value
	case FieldGallery:
		d.Gallery = value
	case FieldAddress:
		d.Address = value
	}
	return d
}

// Shown indica si el visor público debe mostrar el campo: flag activo y valor no vacío.
func (p Pet) Shown(f Field) bool {
	return p.Visibility.Get(f) && p.Value(f) != ""
}
