package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/services"
)

// BorrowingsAPIController is the JSON adapter over the borrowing service.
type BorrowingsAPIController struct {
	borrowings *services.BorrowingService
}

func NewBorrowingsAPIController(borrowings *services.BorrowingService) *BorrowingsAPIController {
	return &BorrowingsAPIController{borrowings: borrowings}
}

// borrowingInput carries only the ids; the server fixes every other field on
// create regardless of what the client sends.
type borrowingInput struct {
	BookID   uint `json:"book_id" binding:"required"`
	MemberID uint `json:"member_id" binding:"required"`
}

// List responds with all records projected to DTOs, Returned/Borrowed status.
func (controller *BorrowingsAPIController) List(c *gin.Context) {
	dtos, err := controller.borrowings.ListDtos()
	if err != nil {
		respondInternalError(c, err, "list borrowings")
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// Get responds with the full record, book and member included, or 404.
func (controller *BorrowingsAPIController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	record, err := controller.borrowings.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "borrowing record")
		return
	}
	c.JSON(http.StatusOK, record)
}

// Overdue lists unreturned records strictly past due with the fee recomputed
// against the current time.
func (controller *BorrowingsAPIController) Overdue(c *gin.Context) {
	dtos, err := controller.borrowings.ListOverdue()
	if err != nil {
		respondInternalError(c, err, "overdue borrowings")
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// Create opens a borrowing and marks the book unavailable in the same
// commit; 201 with a Location to Get.
func (controller *BorrowingsAPIController) Create(c *gin.Context) {
	var in borrowingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	record, err := controller.borrowings.Create(in.BookID, in.MemberID, nil)
	if err != nil {
		respondServiceError(c, err, "borrowing record")
		return
	}

	c.Header("Location", fmt.Sprintf("/api/BorrowingRecords/%d", record.RecordID))
	c.JSON(http.StatusCreated, record)
}

// Return marks the record returned, charges the late fee and restores the
// book's availability; 204/404.
func (controller *BorrowingsAPIController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.borrowings.Return(id); err != nil {
		respondServiceError(c, err, "borrowing record")
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes a record, restoring the book's availability when the record
// was still open; 204/404.
func (controller *BorrowingsAPIController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.borrowings.Delete(id); err != nil {
		respondServiceError(c, err, "borrowing record")
		return
	}
	c.Status(http.StatusNoContent)
}
