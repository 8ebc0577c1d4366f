package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/services"
)

// BooksUIController renders the server-side HTML surface for the catalogue.
// It shares the book service with the JSON adapter.
type BooksUIController struct {
	books *services.BookService
}

func NewBooksUIController(books *services.BookService) *BooksUIController {
	return &BooksUIController{books: books}
}

type bookForm struct {
	Title     string `form:"title"`
	Author    string `form:"author"`
	Genre     string `form:"genre"`
	Available string `form:"available"`
}

func (f bookForm) toEntity(id uint) entities.Book {
	return entities.Book{
		BookID:    id,
		Title:     f.Title,
		Author:    f.Author,
		Genre:     f.Genre,
		Available: f.Available == "on" || f.Available == "true",
	}
}

func (controller *BooksUIController) ListPage(c *gin.Context) {
	books, err := controller.books.List()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "book-list.html", gin.H{
		"Books":     books,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BooksUIController) DetailsPage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		renderUIError(c, err, "Book")
		return
	}

	c.HTML(http.StatusOK, "book-details.html", gin.H{"Book": book})
}

func (controller *BooksUIController) CreatePage(c *gin.Context) {
	c.HTML(http.StatusOK, "book-form.html", gin.H{
		"Book":      entities.Book{Available: true},
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BooksUIController) Create(c *gin.Context) {
	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	book := form.toEntity(0)
	book.Available = true
	if err := controller.books.Create(&book); err != nil {
		controller.redisplayForm(c, book, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/Book")
}

func (controller *BooksUIController) EditPage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		renderUIError(c, err, "Book")
		return
	}

	c.HTML(http.StatusOK, "book-form.html", gin.H{
		"Book":      book,
		"IsEdit":    true,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BooksUIController) Edit(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	book := form.toEntity(id)
	if err := controller.books.Update(id, &book); err != nil {
		var validation services.ValidationErrors
		if errors.As(err, &validation) {
			c.HTML(http.StatusBadRequest, "book-form.html", gin.H{
				"Book":      book,
				"IsEdit":    true,
				"Errors":    validation,
				"CSRFToken": csrfToken(c),
			})
			return
		}
		renderUIError(c, err, "Book")
		return
	}

	c.Redirect(http.StatusSeeOther, "/Book")
}

func (controller *BooksUIController) DeletePage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		renderUIError(c, err, "Book")
		return
	}

	c.HTML(http.StatusOK, "book-delete.html", gin.H{
		"Book":      book,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BooksUIController) Delete(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	if err := controller.books.Delete(id); err != nil {
		renderUIError(c, err, "Book")
		return
	}

	c.Redirect(http.StatusSeeOther, "/Book")
}

// redisplayForm re-renders the create form with the entered values preserved
// and either per-field messages or a form-level message when the commit
// itself failed.
func (controller *BooksUIController) redisplayForm(c *gin.Context, book entities.Book, err error) {
	data := gin.H{
		"Book":      book,
		"CSRFToken": csrfToken(c),
	}

	var validation services.ValidationErrors
	if errors.As(err, &validation) {
		data["Errors"] = validation
		c.HTML(http.StatusBadRequest, "book-form.html", data)
		return
	}

	data["FormError"] = "Could not save the book. Please try again."
	c.HTML(http.StatusInternalServerError, "book-form.html", data)
}
