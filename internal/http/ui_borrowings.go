package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/services"
)

// BorrowingsUIController renders the server-side HTML surface for borrowing
// records. The create form offers only books that are currently available.
type BorrowingsUIController struct {
	borrowings *services.BorrowingService
	books      *services.BookService
	members    *services.MemberService
}

func NewBorrowingsUIController(
	borrowings *services.BorrowingService,
	books *services.BookService,
	members *services.MemberService,
) *BorrowingsUIController {
	return &BorrowingsUIController{
		borrowings: borrowings,
		books:      books,
		members:    members,
	}
}

type borrowingCreateForm struct {
	BookID   uint   `form:"book_id"`
	MemberID uint   `form:"member_id"`
	DueDate  string `form:"due_date"`
}

type borrowingEditForm struct {
	RecordID   uint   `form:"record_id"`
	BookID     uint   `form:"book_id"`
	MemberID   uint   `form:"member_id"`
	BorrowDate string `form:"borrow_date"`
	DueDate    string `form:"due_date"`
	Returned   string `form:"returned"`
	LateFee    string `form:"late_fee"`
}

func (controller *BorrowingsUIController) ListPage(c *gin.Context) {
	records, err := controller.borrowings.List()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading borrowing records: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "borrowing-list.html", gin.H{
		"Records":   records,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BorrowingsUIController) DetailsPage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	record, err := controller.borrowings.GetByID(id)
	if err != nil {
		renderUIError(c, err, "Borrowing record")
		return
	}

	c.HTML(http.StatusOK, "borrowing-details.html", gin.H{"Record": record})
}

func (controller *BorrowingsUIController) CreatePage(c *gin.Context) {
	controller.renderCreateForm(c, http.StatusOK, gin.H{})
}

func (controller *BorrowingsUIController) Create(c *gin.Context) {
	var form borrowingCreateForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	dueDate, err := parseFormDate(form.DueDate)
	if err != nil {
		controller.renderCreateForm(c, http.StatusBadRequest, gin.H{
			"Errors": services.ValidationErrors{"DueDate": "due date is not a valid date"},
		})
		return
	}

	if _, err := controller.borrowings.Create(form.BookID, form.MemberID, dueDate); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			controller.renderCreateForm(c, http.StatusBadRequest, gin.H{
				"Errors": services.ValidationErrors{"BookID": "selected book or member no longer exists"},
			})
			return
		}
		controller.renderCreateForm(c, http.StatusInternalServerError, gin.H{
			"FormError": "Could not save the borrowing record. Please try again.",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/BorrowingRecord")
}

func (controller *BorrowingsUIController) EditPage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	record, err := controller.borrowings.Get(id)
	if err != nil {
		renderUIError(c, err, "Borrowing record")
		return
	}

	c.HTML(http.StatusOK, "borrowing-form.html", gin.H{
		"Record":    record,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BorrowingsUIController) Edit(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	var form borrowingEditForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	record, err := controller.recordFromEditForm(form)
	if err != nil {
		c.HTML(http.StatusBadRequest, "borrowing-form.html", gin.H{
			"Record":    record,
			"Errors":    services.ValidationErrors{"DueDate": "dates must be valid"},
			"CSRFToken": csrfToken(c),
		})
		return
	}

	if err := controller.borrowings.Update(id, record); err != nil {
		var validation services.ValidationErrors
		if errors.As(err, &validation) {
			c.HTML(http.StatusBadRequest, "borrowing-form.html", gin.H{
				"Record":    record,
				"Errors":    validation,
				"CSRFToken": csrfToken(c),
			})
			return
		}
		renderUIError(c, err, "Borrowing record")
		return
	}

	c.Redirect(http.StatusSeeOther, "/BorrowingRecord")
}

func (controller *BorrowingsUIController) DeletePage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	record, err := controller.borrowings.GetByID(id)
	if err != nil {
		renderUIError(c, err, "Borrowing record")
		return
	}

	c.HTML(http.StatusOK, "borrowing-delete.html", gin.H{
		"Record":    record,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BorrowingsUIController) Delete(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	if err := controller.borrowings.Delete(id); err != nil {
		renderUIError(c, err, "Borrowing record")
		return
	}

	c.Redirect(http.StatusSeeOther, "/BorrowingRecord")
}

// renderCreateForm loads the selectable books (available only) and members
// for the create form's dropdowns.
func (controller *BorrowingsUIController) renderCreateForm(c *gin.Context, status int, extra gin.H) {
	books, err := controller.books.ListAvailable()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}
	members, err := controller.members.List()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading members: %s", err.Error())
		return
	}

	data := gin.H{
		"Books":     books,
		"Members":   members,
		"CSRFToken": csrfToken(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(status, "borrowing-create.html", data)
}

func (controller *BorrowingsUIController) recordFromEditForm(form borrowingEditForm) (*entities.BorrowingRecord, error) {
	record := &entities.BorrowingRecord{
		RecordID: form.RecordID,
		BookID:   form.BookID,
		MemberID: form.MemberID,
		Returned: form.Returned == "on" || form.Returned == "true",
	}

	if form.LateFee != "" {
		fee, err := strconv.ParseFloat(form.LateFee, 64)
		if err != nil {
			return record, err
		}
		record.LateFee = fee
	}

	borrowDate, err := parseFormDate(form.BorrowDate)
	if err != nil {
		return record, err
	}
	if borrowDate != nil {
		record.BorrowDate = *borrowDate
	}

	dueDate, err := parseFormDate(form.DueDate)
	if err != nil {
		return record, err
	}
	if dueDate != nil {
		record.DueDate = *dueDate
	} else {
		return record, errors.New("due date is required")
	}

	return record, nil
}
