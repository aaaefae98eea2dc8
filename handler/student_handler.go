package handler

import (
	"net/http"
	"strconv"

	"student-records-api/common"
	"student-records-api/logger"
	"student-records-api/model"
	"student-records-api/render"
	"student-records-api/service"

	"github.com/sirupsen/logrus"
)

const formValidationMessage = "All fields are required and year level must be between 1 and 4"

// StudentHandler serves the record CRUD surface for API and browser
// clients alike; every response goes through the negotiator.
type StudentHandler struct {
	service    *service.StudentService
	negotiator *render.Negotiator
}

func NewStudentHandler(s *service.StudentService, n *render.Negotiator) *StudentHandler {
	return &StudentHandler{service: s, negotiator: n}
}

func pathID(r *http.Request) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid student ID in URL path", err)
	}
	return id, nil
}

// List godoc
// @Summary      List students
// @Description  Lists all student records, or those matching a substring search across first name, last name, email and program.
// @Tags         students
// @Produce      json,xml
// @Security     TokenAuth
// @Param        search query string false "Substring to search for"
// @Param        format query string false "Response format: json, xml or html"
// @Success      200  {array}   model.Student
// @Failure      401  {object}  map[string]string
// @Router       /students [get]
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	search := r.URL.Query().Get("search")

	log := logger.Log.WithFields(logrus.Fields{
		"subject": r.Context().Value(SubjectKey),
		"search":  search,
	})
	log.Info("List students request received")

	students, err := h.service.List(r.Context(), search)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve students", err)
	}

	h.negotiator.StudentList(w, render.ResolveFormat(r), http.StatusOK, students, search)
	return nil
}

// Get godoc
// @Summary      Get one student
// @Tags         students
// @Produce      json,xml
// @Security     TokenAuth
// @Param        id path int true "Record ID"
// @Param        format query string false "Response format: json, xml or html"
// @Success      200  {object}  model.Student
// @Failure      404  {object}  map[string]string
// @Router       /students/{id} [get]
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	student, err := h.service.Get(r.Context(), id)
	if err != nil {
		if err == service.ErrStudentNotFound {
			return common.NewAppError(http.StatusNotFound, "Student not found", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve student", err)
	}

	h.negotiator.Student(w, render.ResolveFormat(r), http.StatusOK, student)
	return nil
}

// Create godoc
// @Summary      Create a student
// @Tags         students
// @Accept       json
// @Produce      json,xml
// @Security     TokenAuth
// @Param        student body model.StudentRequest true "Student record"
// @Success      201  {object}  model.Student
// @Failure      400  {object}  map[string]string "Missing fields or year level outside 1-4"
// @Router       /students [post]
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	if isFormRequest(r) {
		h.createForm(w, r)
		return nil
	}

	var req model.StudentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	student, err := h.service.Create(r.Context(), req)
	if err != nil {
		return h.mapStudentError(err, "Could not create student")
	}

	h.negotiator.Student(w, render.ResolveFormat(r), http.StatusCreated, student)
	return nil
}

func (h *StudentHandler) createForm(w http.ResponseWriter, r *http.Request) {
	req, errMsg := parseStudentForm(r)
	page := render.StudentFormPage{
		Title:   "Add student",
		Action:  "/students",
		Student: studentFromRequest(0, req),
	}
	if errMsg == "" {
		if appErr := common.Validate(&req); appErr != nil {
			errMsg = formValidationMessage
		}
	}
	if errMsg != "" {
		page.Error = errMsg
		h.negotiator.HTML(w, http.StatusBadRequest, "student_form.html", page)
		return
	}

	if _, err := h.service.Create(r.Context(), req); err != nil {
		page.Error = "Could not create student"
		h.negotiator.HTML(w, http.StatusInternalServerError, "student_form.html", page)
		return
	}
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

// Update godoc
// @Summary      Update a student
// @Description  Full update; every field is required, as on create.
// @Tags         students
// @Accept       json
// @Produce      json,xml
// @Security     TokenAuth
// @Param        id path int true "Record ID"
// @Param        student body model.StudentRequest true "Student record"
// @Success      200  {object}  model.Student
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /students/{id} [put]
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if isFormRequest(r) {
		h.updateForm(w, r, id)
		return nil
	}

	var req model.StudentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	student, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		return h.mapStudentError(err, "Could not update student")
	}

	h.negotiator.Student(w, render.ResolveFormat(r), http.StatusOK, student)
	return nil
}

func (h *StudentHandler) updateForm(w http.ResponseWriter, r *http.Request, id int) {
	req, errMsg := parseStudentForm(r)
	page := render.StudentFormPage{
		Title:   "Edit student",
		Action:  "/students/" + strconv.Itoa(id),
		Student: studentFromRequest(id, req),
	}
	if errMsg == "" {
		if appErr := common.Validate(&req); appErr != nil {
			errMsg = formValidationMessage
		}
	}
	if errMsg != "" {
		page.Error = errMsg
		h.negotiator.HTML(w, http.StatusBadRequest, "student_form.html", page)
		return
	}

	if _, err := h.service.Update(r.Context(), id, req); err != nil {
		if err == service.ErrStudentNotFound {
			h.negotiator.Error(w, render.FormatHTML, http.StatusNotFound, "Student not found")
			return
		}
		page.Error = "Could not update student"
		h.negotiator.HTML(w, http.StatusInternalServerError, "student_form.html", page)
		return
	}
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

// Delete godoc
// @Summary      Delete a student
// @Tags         students
// @Produce      json,xml
// @Security     TokenAuth
// @Param        id path int true "Record ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /students/{id} [delete]
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		return h.mapStudentError(err, "Could not delete student")
	}

	h.negotiator.Message(w, render.ResolveFormat(r), http.StatusOK, "Student deleted!")
	return nil
}

// DeleteForm is the browser-facing delete: a form post that redirects back
// to the list.
func (h *StudentHandler) DeleteForm(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		return h.mapStudentError(err, "Could not delete student")
	}

	http.Redirect(w, r, "/students", http.StatusSeeOther)
	return nil
}

// NewForm renders the empty create form.
func (h *StudentHandler) NewForm(w http.ResponseWriter, r *http.Request) *common.AppError {
	h.negotiator.HTML(w, http.StatusOK, "student_form.html", render.StudentFormPage{
		Title:   "Add student",
		Action:  "/students",
		Student: &model.Student{YearLevel: 1},
	})
	return nil
}

// EditForm renders the edit form pre-filled with the stored record.
func (h *StudentHandler) EditForm(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	student, err := h.service.Get(r.Context(), id)
	if err != nil {
		if err == service.ErrStudentNotFound {
			return common.NewAppError(http.StatusNotFound, "Student not found", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve student", err)
	}

	h.negotiator.HTML(w, http.StatusOK, "student_form.html", render.StudentFormPage{
		Title:   "Edit student",
		Action:  "/students/" + strconv.Itoa(id),
		Student: student,
	})
	return nil
}

func (h *StudentHandler) mapStudentError(err error, fallback string) *common.AppError {
	switch err {
	case service.ErrStudentNotFound:
		return common.NewAppError(http.StatusNotFound, "Student not found", err)
	case service.ErrInvalidYearLevel:
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}

// parseStudentForm reads a URL-encoded student form. A non-numeric year
// level is reported as a message rather than an error type because the
// form path re-renders the page instead of negotiating a payload.
func parseStudentForm(r *http.Request) (model.StudentRequest, string) {
	var req model.StudentRequest
	if err := r.ParseForm(); err != nil {
		return req, "Invalid form data"
	}

	req.StudentID = r.PostFormValue("student_id")
	req.FirstName = r.PostFormValue("first_name")
	req.LastName = r.PostFormValue("last_name")
	req.Email = r.PostFormValue("email")
	req.Program = r.PostFormValue("program")

	year, err := strconv.Atoi(r.PostFormValue("year_level"))
	if err != nil {
		return req, "Year level must be an integer"
	}
	req.YearLevel = year
	return req, ""
}

func studentFromRequest(id int, req model.StudentRequest) *model.Student {
	return &model.Student{
		ID:        id,
		StudentID: req.StudentID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Program:   req.Program,
		YearLevel: req.YearLevel,
	}
}
