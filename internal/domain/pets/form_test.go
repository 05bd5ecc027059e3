package pets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCreateForm_AllFlagsOff(t *testing.T) {
	f := NewCreateForm()

	assert.Equal(t, FormCreate, f.Mode)
	assert.False(t, f.Editing())
	assert.Empty(t, f.ID)
	for _, field := range OptionalFields {
		assert.False(t, f.Visibility.Get(field), field)
	}
}

func TestNewEditForm_Prefills(t *testing.T) {
	p := Pet{
		ID:          "p-1",
		OwnerUserID: "owner-1",
		Details:     Details{Username: "milo", Name: "Milo", Instagram: "milo.gram"},
		Visibility:  Visibility{Instagram: true, Address: true},
		CreatedAt:   time.Now(),
	}

	f := NewEditForm(p)
	assert.True(t, f.Editing())
	assert.Equal(t, "p-1", f.ID)
	assert.Equal(t, p.Details, f.Details)
	assert.Equal(t, p.Visibility, f.Visibility)
}

func TestForm_ToggleIsLocalFlip(t *testing.T) {
	f := NewCreateForm()

	f.Toggle(FieldGallery)
	assert.True(t, f.Visibility.Gallery)
	assert.Equal(t, Visibility{Gallery: true}, f.Visibility, "only the toggled flag changes")

	f.Toggle(FieldGallery)
	assert.False(t, f.Visibility.Gallery)

	f.Toggle(Field("nope"))
	assert.Equal(t, Visibility{}, f.Visibility)
}

func TestForm_SetImageURL(t *testing.T) {
	f := NewCreateForm()
	f.SetImageURL("https://cdn/pet_images/x.jpg")
	assert.Equal(t, "https://cdn/pet_images/x.jpg", f.Details.ImageURL)
}

func TestField_VisibilityColumn(t *testing.T) {
	assert.Equal(t, "whatsapp_visibility", FieldWhatsApp.VisibilityColumn())
	assert.True(t, FieldAddress.Valid())
	assert.False(t, Field("pet_name").Valid())
}
