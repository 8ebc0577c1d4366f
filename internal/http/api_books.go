package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/services"
)

// BooksAPIController is the JSON adapter over the book service.
type BooksAPIController struct {
	books *services.BookService
}

func NewBooksAPIController(books *services.BookService) *BooksAPIController {
	return &BooksAPIController{books: books}
}

type bookInput struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Genre     string `json:"genre" binding:"required"`
	Available *bool  `json:"available"`
}

func (in bookInput) toEntity() entities.Book {
	book := entities.Book{
		BookID:    in.BookID,
		Title:     in.Title,
		Author:    in.Author,
		Genre:     in.Genre,
		Available: true,
	}
	if in.Available != nil {
		book.Available = *in.Available
	}
	return book
}

// List responds with every book projected to {BookId, Title, Author, Status}.
func (controller *BooksAPIController) List(c *gin.Context) {
	dtos, err := controller.books.ListDtos()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// Get responds with the full book row or 404.
func (controller *BooksAPIController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// ByGenre responds with all books matching the genre, ignoring case.
func (controller *BooksAPIController) ByGenre(c *gin.Context) {
	books, err := controller.books.ByGenre(c.Param("genre"))
	if err != nil {
		respondInternalError(c, err, "books by genre")
		return
	}
	c.JSON(http.StatusOK, books)
}

// Create inserts a book and answers 201 with a Location to Get.
func (controller *BooksAPIController) Create(c *gin.Context) {
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book := in.toEntity()
	book.BookID = 0
	if err := controller.books.Create(&book); err != nil {
		respondServiceError(c, err, "book")
		return
	}

	c.Header("Location", fmt.Sprintf("/api/Books/%d", book.BookID))
	c.JSON(http.StatusCreated, book)
}

// Update fully replaces a book: 400 on id mismatch, 404 when the row is gone,
// 204 on success.
func (controller *BooksAPIController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book := in.toEntity()
	if err := controller.books.Update(id, &book); err != nil {
		respondServiceError(c, err, "book")
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes a book: 404 when absent, 204 on success.
func (controller *BooksAPIController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.books.Delete(id); err != nil {
		respondServiceError(c, err, "book")
		return
	}
	c.Status(http.StatusNoContent)
}
