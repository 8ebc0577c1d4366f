package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/services"
)

// MembersAPIController is the JSON adapter over the member service. The
// borrowings service supplies the member history projection.
type MembersAPIController struct {
	members    *services.MemberService
	borrowings *services.BorrowingService
}

func NewMembersAPIController(members *services.MemberService, borrowings *services.BorrowingService) *MembersAPIController {
	return &MembersAPIController{members: members, borrowings: borrowings}
}

type memberInput struct {
	MemberID  uint   `json:"member_id"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

func (in memberInput) toEntity() entities.Member {
	return entities.Member{
		MemberID:  in.MemberID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	}
}

// List responds with every member projected to the MemberDto shape.
func (controller *MembersAPIController) List(c *gin.Context) {
	dtos, err := controller.members.ListDtos()
	if err != nil {
		respondInternalError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// Get responds with the full member row or 404.
func (controller *MembersAPIController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := controller.members.GetByID(id, false)
	if err != nil {
		respondServiceError(c, err, "member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// Borrowings responds with the member's borrowing history as record DTOs.
func (controller *MembersAPIController) Borrowings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dtos, err := controller.borrowings.ListByMember(id)
	if err != nil {
		respondInternalError(c, err, "member borrowings")
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// Create inserts a member and answers 201 with a Location to Get.
func (controller *MembersAPIController) Create(c *gin.Context) {
	var in memberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	member := in.toEntity()
	member.MemberID = 0
	if err := controller.members.Create(&member); err != nil {
		respondServiceError(c, err, "member")
		return
	}

	c.Header("Location", fmt.Sprintf("/api/Members/%d", member.MemberID))
	c.JSON(http.StatusCreated, member)
}

// Update fully replaces a member: 400 on id mismatch, 404 when the row is
// gone, 204 on success.
func (controller *MembersAPIController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in memberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	member := in.toEntity()
	if err := controller.members.Update(id, &member); err != nil {
		respondServiceError(c, err, "member")
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes a member: 404 when absent, 204 on success.
func (controller *MembersAPIController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.members.Delete(id); err != nil {
		respondServiceError(c, err, "member")
		return
	}
	c.Status(http.StatusNoContent)
}
