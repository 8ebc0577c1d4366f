package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/services"
)

// MembersUIController renders the server-side HTML surface for members.
type MembersUIController struct {
	members *services.MemberService
}

func NewMembersUIController(members *services.MemberService) *MembersUIController {
	return &MembersUIController{members: members}
}

type memberForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Phone     string `form:"phone"`
}

func (f memberForm) toEntity(id uint) entities.Member {
	return entities.Member{
		MemberID:  id,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
	}
}

func (controller *MembersUIController) ListPage(c *gin.Context) {
	members, err := controller.members.List()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading members: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "member-list.html", gin.H{
		"Members":   members,
		"CSRFToken": csrfToken(c),
	})
}

// DetailsPage shows a member together with their borrowing history, each
// record carrying its book.
func (controller *MembersUIController) DetailsPage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	member, err := controller.members.GetByID(id, true)
	if err != nil {
		renderUIError(c, err, "Member")
		return
	}

	c.HTML(http.StatusOK, "member-details.html", gin.H{"Member": member})
}

func (controller *MembersUIController) CreatePage(c *gin.Context) {
	c.HTML(http.StatusOK, "member-form.html", gin.H{
		"Member":    entities.Member{},
		"CSRFToken": csrfToken(c),
	})
}

func (controller *MembersUIController) Create(c *gin.Context) {
	var form memberForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	member := form.toEntity(0)
	if err := controller.members.Create(&member); err != nil {
		controller.redisplayForm(c, member, false, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/Member")
}

func (controller *MembersUIController) EditPage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	member, err := controller.members.GetByID(id, false)
	if err != nil {
		renderUIError(c, err, "Member")
		return
	}

	c.HTML(http.StatusOK, "member-form.html", gin.H{
		"Member":    member,
		"IsEdit":    true,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *MembersUIController) Edit(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	var form memberForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	member := form.toEntity(id)
	if err := controller.members.Update(id, &member); err != nil {
		var validation services.ValidationErrors
		if errors.As(err, &validation) {
			c.HTML(http.StatusBadRequest, "member-form.html", gin.H{
				"Member":    member,
				"IsEdit":    true,
				"Errors":    validation,
				"CSRFToken": csrfToken(c),
			})
			return
		}
		renderUIError(c, err, "Member")
		return
	}

	c.Redirect(http.StatusSeeOther, "/Member")
}

func (controller *MembersUIController) DeletePage(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	member, err := controller.members.GetByID(id, false)
	if err != nil {
		renderUIError(c, err, "Member")
		return
	}

	c.HTML(http.StatusOK, "member-delete.html", gin.H{
		"Member":    member,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *MembersUIController) Delete(c *gin.Context) {
	id, ok := parseUIID(c)
	if !ok {
		return
	}

	if err := controller.members.Delete(id); err != nil {
		renderUIError(c, err, "Member")
		return
	}

	c.Redirect(http.StatusSeeOther, "/Member")
}

func (controller *MembersUIController) redisplayForm(c *gin.Context, member entities.Member, isEdit bool, err error) {
	data := gin.H{
		"Member":    member,
		"IsEdit":    isEdit,
		"CSRFToken": csrfToken(c),
	}

	var validation services.ValidationErrors
	if errors.As(err, &validation) {
		data["Errors"] = validation
		c.HTML(http.StatusBadRequest, "member-form.html", data)
		return
	}

	data["FormError"] = "Could not save the member. Please try again."
	c.HTML(http.StatusInternalServerError, "member-form.html", data)
}
