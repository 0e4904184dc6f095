package model

import "portfolio-generator/internal/section"

// InputKind selects the widget a front end uses for a field.
type InputKind int

const (
	InputLine InputKind = iota
	InputText
	InputPath
)

// FormField is one scalar input of the profile form, addressed by its
// document key.
type FormField struct {
	Key   string
	Label string
	Kind  InputKind
}

// FormSection groups fields under a title. A section with Repeatable set is
// rendered once per entry of that kind instead of from Fields.
type FormSection struct {
	Title      string
	Fields     []FormField
	Repeatable *section.Kind
}

// PhotoKey is the form key of the profile photo input.
const PhotoKey = "photo_path"

// ProfileForm is the profile form in display order.
var ProfileForm = []FormSection{
	{
		Title: "🧑 Dados Pessoais",
		Fields: []FormField{
			{Key: PhotoKey, Label: "Foto de Perfil (PNG/JPEG):", Kind: InputPath},
			{Key: "nome", Label: "Nome Completo:"},
			{Key: "titulo", Label: "Título Profissional (Ex: Desenvolvedor Full Stack):"},
			{Key: "bio", Label: "Descrição Curta (Bio):", Kind: InputText},
			{Key: "telefone", Label: "Telefone:"},
			{Key: "email", Label: "Email:"},
			{Key: "local", Label: "Localização (Ex: Maceió-AL):"},
			{Key: "linkedin", Label: "URL do LinkedIn:"},
			{Key: "instagram", Label: "URL do Instagram (Opcional):"},
		},
	},
	{Title: section.Education.Title, Repeatable: &section.Education},
	{Title: section.Experience.Title, Repeatable: &section.Experience},
	{
		Title: "💻 Habilidades",
		Fields: []FormField{
			{Key: "habilidades_frontend", Label: "Habilidades Frontend (Ex: HTML5, CSS3, React):", Kind: InputText},
			{Key: "habilidades_backend", Label: "Habilidades Backend (Ex: Node.js, Express, PostgreSQL):", Kind: InputText},
			{Key: "habilidades_soft", Label: "Soft Skills (Ex: Liderança, Comunicação):", Kind: InputText},
		},
	},
}
