package handlers

import (
	"net/http"

	"gallery/auth"
	"gallery/gallery"
	"gallery/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserLoginRequest struct {
	Email string `form:"email" binding:"required"`
}

// UserLogin signs the visitor in by email, creating the account on first use.
// Any album created anonymously from this browser is handed over here.
func UserLogin(c *gin.Context, s *gallery.Session) {
	req := UserLoginRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	user, err := models.UserSignIn(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, Response{Error: err.Error()})
		return
	}
	auth.LoadSession(c).SetUserID(user.ID)
	s.SignIn(user.ID)
	c.JSON(http.StatusOK, gin.H{"error": "", "user": user})
}

func UserLogout(c *gin.Context, s *gallery.Session) {
	authSession := auth.LoadSession(c)
	token := authSession.VisitorToken()
	authSession.LogoutUser()
	s.SignOut()
	// The registry entry goes too; the next request starts a fresh session
	auth.Drop(token)
	c.JSON(http.StatusOK, OKResponse)
}

func UserStatus(c *gin.Context, s *gallery.Session) {
	userID := s.UserID()
	c.JSON(http.StatusOK, gin.H{"error": "", "user_id": userID, "signed_in": userID != ""})
}
