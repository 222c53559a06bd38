package auth

import (
	"gallery/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	visitorTokenKey = "visitor"
	userIdKey       = "id"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

// VisitorToken returns this browser's stable token, minting one on first use.
// The token outlives sign-in and sign-out and keys the pending ownership
// claim of anonymously created albums.
func (s *Session) VisitorToken() string {
	if token := s.Get(visitorTokenKey); token != nil {
		return token.(string)
	}
	token := utils.RandToken()
	s.Set(visitorTokenKey, token)
	s.Save()
	return token
}

func (s *Session) UserID() string {
	id := s.Get(userIdKey)
	if id == nil {
		return ""
	}
	return id.(string)
}

func (s *Session) SetUserID(id string) {
	s.Set(userIdKey, id)
	s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Save()
}
