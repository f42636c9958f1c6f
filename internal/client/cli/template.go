package cli

import (
	"text/template"
)

var templateFuncs = template.FuncMap{
	"date": displayDate,
}

const authorTemplate = `
=== {{.FullName}} ===

ID:             {{.ID}}
{{- if .Birthday }}
Birthday:       {{date .Birthday}}
{{- end}}
{{- if .PlaceOfBirth }}
Place of birth: {{.PlaceOfBirth}}
{{- end}}
{{- if .Gender }}
Gender:         {{.Gender}}
{{- end}}
Books:          {{.BookCount}}
{{- if .Biography }}

{{.Biography}}
{{- end}}

`

const profileTemplate = `
=== Profile ===

ID:         {{.ID}}
Email:      {{.Email}}
First name: {{.FirstName}}
Last name:  {{.LastName}}
Gender:     {{.Gender}}
Active:     {{if .Active}}yes{{else}}no{{end}}
Confirmed:  {{if .EmailConfirmed}}yes{{else}}no{{end}}
`

var (
	authorTmpl  = template.Must(template.New("author").Funcs(templateFuncs).Parse(authorTemplate))
	profileTmpl = template.Must(template.New("profile").Parse(profileTemplate))
)
