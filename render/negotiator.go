package render

import (
	"encoding/json"
	"encoding/xml"
	"html/template"
	"io"
	"net/http"

	"student-records-api/logger"
	"student-records-api/model"
	"student-records-api/web"
)

// Negotiator renders a payload in the format a caller asked for. Success
// and error payloads go through the same paths so every response shape is
// available as JSON, XML, and HTML.
type Negotiator struct {
	tmpl *template.Template
}

func NewNegotiator() (*Negotiator, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Negotiator{tmpl: tmpl}, nil
}

// StudentListPage is the view data for the student list template.
type StudentListPage struct {
	Students []*model.Student
	Search   string
}

// StudentPage is the view data for the student detail template.
type StudentPage struct {
	Student *model.Student
}

// MessagePage is the view data for the plain message template.
type MessagePage struct {
	Message string
}

// ErrorPage is the view data for the error template.
type ErrorPage struct {
	Code    int
	Message string
}

// AuthPage is the view data for the login and register forms.
type AuthPage struct {
	Error string
}

// StudentFormPage is the view data for the create/edit student form.
// Student is never nil; the create form gets a zero-value record.
type StudentFormPage struct {
	Title   string
	Action  string
	Student *model.Student
	Error   string
}

func (n *Negotiator) StudentList(w http.ResponseWriter, f Format, status int, students []*model.Student, search string) {
	switch f {
	case FormatJSON:
		if students == nil {
			students = []*model.Student{}
		}
		writeJSON(w, status, students)
	case FormatXML:
		writeXML(w, status, toStudentListXML(students))
	case FormatHTML:
		n.HTML(w, status, "students.html", StudentListPage{Students: students, Search: search})
	}
}

func (n *Negotiator) Student(w http.ResponseWriter, f Format, status int, s *model.Student) {
	switch f {
	case FormatJSON:
		writeJSON(w, status, s)
	case FormatXML:
		writeXML(w, status, toStudentDocXML(s))
	case FormatHTML:
		n.HTML(w, status, "student.html", StudentPage{Student: s})
	}
}

func (n *Negotiator) Message(w http.ResponseWriter, f Format, status int, msg string) {
	switch f {
	case FormatJSON:
		writeJSON(w, status, map[string]string{"message": msg})
	case FormatXML:
		writeXML(w, status, messageXML{Message: msg})
	case FormatHTML:
		n.HTML(w, status, "message.html", MessagePage{Message: msg})
	}
}

// Token renders a freshly issued bearer token. The HTML case only exists
// for switch completeness; browser logins park the token in a session and
// redirect instead.
func (n *Negotiator) Token(w http.ResponseWriter, f Format, status int, token string) {
	switch f {
	case FormatJSON:
		writeJSON(w, status, map[string]string{"token": token})
	case FormatXML:
		writeXML(w, status, tokenXML{Token: token})
	case FormatHTML:
		n.HTML(w, status, "message.html", MessagePage{Message: "Logged in"})
	}
}

func (n *Negotiator) Error(w http.ResponseWriter, f Format, status int, msg string) {
	switch f {
	case FormatJSON:
		writeJSON(w, status, map[string]string{"error": msg})
	case FormatXML:
		writeXML(w, status, errorXML{Error: msg})
	case FormatHTML:
		n.HTML(w, status, "error.html", ErrorPage{Code: status, Message: msg})
	}
}

// HTML renders a named template directly. Used for the browser-only pages
// (login, register, student forms) that have no JSON/XML counterpart.
func (n *Negotiator) HTML(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := n.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Log.WithError(err).WithField("template", name).Error("Failed to execute template")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Error("Failed to encode JSON response")
	}
}

func writeXML(w http.ResponseWriter, status int, v any) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Log.WithError(err).Error("Failed to marshal XML response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, xml.Header)
	w.Write(body)
	io.WriteString(w, "\n")
}
