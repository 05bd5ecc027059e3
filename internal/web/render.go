package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"pet-profiles/internal/domain/pets"
	"pet-profiles/internal/ports/auth"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageLogin    = "login.html"
	pageAdmin    = "admin.html"
	pageList     = "list.html"
	pageForm     = "form.html"
	pageProfile  = "profile.html"
	pageNotFound = "notfound.html"
)

var pageNames = []string{pageLogin, pageAdmin, pageList, pageForm, pageProfile, pageNotFound}

// Sin WithUnsafe: el HTML crudo se omite y los links peligrosos quedan vacíos.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var fieldLabels = map[pets.Field]string{
	pets.FieldDescription: "Description",
	pets.FieldWhatsApp:    "WhatsApp",
	pets.FieldLocation:    "Location",
	pets.FieldInstagram:   "Instagram",
	pets.FieldGallery:     "Gallery",
	pets.FieldAddress:     "Address",
}

func fieldLabel(f pets.Field) string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// telURL habilita el esquema tel: que html/template filtra por defecto.
func telURL(s string) template.URL {
	if !strings.HasPrefix(s, "tel:") {
		return "#"
	}
	return template.URL(s)
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"markdown":   renderMarkdown,
		"fieldLabel": fieldLabel,
		"telURL":     telURL,
	}

	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// fieldRow es una fila del formulario: valor + flag de visibilidad del campo.
type fieldRow struct {
	Name    string
	Label   string
	Value   string
	Column  string
	Visible bool
}

// pageData es lo que reciben todas las páginas; cada una usa lo suyo.
type pageData struct {
	AppName string
	Title   string
	Session *auth.Claims
	Error   string

	MobileNumber string // login

	Pets []pets.Pet // lista

	Form   pets.Form // alta/edición
	Action string
	Fields []fieldRow

	Profile pets.PublicProfile // visor público
}

func formRows(f pets.Form) []fieldRow {
	rows := make([]fieldRow, 0, len(pets.OptionalFields))
	for _, fld := range pets.OptionalFields {
		rows = append(rows, fieldRow{
			Name:    string(fld),
			Label:   fieldLabel(fld),
			Value:   f.Details.Value(fld),
			Column:  fld.VisibilityColumn(),
			Visible: f.Visibility.Get(fld),
		})
	}
	return rows
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	t, ok := h.pages[page]
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data.AppName = h.appName
	if data.Session == nil {
		if c, ok := sessionFrom(r); ok {
			data.Session = &c
		}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Error("web: render failed", map[string]any{"page": page, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
