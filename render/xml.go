package render

import (
	"encoding/xml"

	"student-records-api/model"
)

// XML wire shape: a <response> root, list items as <student> elements,
// every field a child element in canonical order, text content only.

type studentXML struct {
	XMLName   xml.Name `xml:"student"`
	ID        int      `xml:"id"`
	StudentID string   `xml:"student_id"`
	FirstName string   `xml:"first_name"`
	LastName  string   `xml:"last_name"`
	Email     string   `xml:"email"`
	Program   string   `xml:"program"`
	YearLevel int      `xml:"year_level"`
}

type studentDocXML struct {
	XMLName   xml.Name `xml:"response"`
	ID        int      `xml:"id"`
	StudentID string   `xml:"student_id"`
	FirstName string   `xml:"first_name"`
	LastName  string   `xml:"last_name"`
	Email     string   `xml:"email"`
	Program   string   `xml:"program"`
	YearLevel int      `xml:"year_level"`
}

type studentListXML struct {
	XMLName  xml.Name     `xml:"response"`
	Students []studentXML `xml:"student"`
}

type messageXML struct {
	XMLName xml.Name `xml:"response"`
	Message string   `xml:"message"`
}

type tokenXML struct {
	XMLName xml.Name `xml:"response"`
	Token   string   `xml:"token"`
}

type errorXML struct {
	XMLName xml.Name `xml:"response"`
	Error   string   `xml:"error"`
}

func toStudentXML(s *model.Student) studentXML {
	return studentXML{
		ID:        s.ID,
		StudentID: s.StudentID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Program:   s.Program,
		YearLevel: s.YearLevel,
	}
}

func toStudentDocXML(s *model.Student) studentDocXML {
	return studentDocXML{
		ID:        s.ID,
		StudentID: s.StudentID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Program:   s.Program,
		YearLevel: s.YearLevel,
	}
}

func toStudentListXML(students []*model.Student) studentListXML {
	list := studentListXML{Students: make([]studentXML, 0, len(students))}
	for _, s := range students {
		list.Students = append(list.Students, toStudentXML(s))
	}
	return list
}
