package sessions

import (
	"net/http"
	"tracker/account"
	"tracker/bizerror"
	"tracker/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

var (
	AuthenticateFunc = account.Authenticate
)

type LogoutResponse struct {
	Message string `json:"message"`
}

// RegisterSessionsHandler mounts login and logout. Logout reads the cookie itself so that
// an already invalid token still gets its cookie cleared.
func RegisterSessionsHandler(r *gin.Engine) {
	g := r.Group("/api/auth")
	g.POST("/login", SimpleLoginHandler)
	g.POST("/logout", SimpleLogoutHandler)
}

func SimpleLoginHandler(c *gin.Context) {
	login := account.LoginRequest{}
	if err := c.ShouldBindBodyWith(&login, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	user, err := AuthenticateFunc(&login, c.Request.Context())
	if err != nil {
		panic(err)
	}

	s, err := session.ActiveTokenManager.Sign(session.Identity{ID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		panic(err)
	}
	session.SetTokenCookie(c, s)
	c.JSON(http.StatusOK, &account.UserResponse{Message: "Login successful", User: *user})
}

func SimpleLogoutHandler(c *gin.Context) {
	token, _ := c.Cookie(session.KeySecToken) // ErrNoCookie
	if token != "" {
		if s, err := session.ActiveTokenManager.Parse(token); err == nil {
			if err := session.ActiveRevocationStore.Revoke(c.Request.Context(), s.TokenID, s.ExpiresAt); err != nil {
				panic(err)
			}
			logrus.WithField("userId", s.Identity.ID).Debug("session revoked")
		}
	}
	session.ClearTokenCookie(c)
	c.JSON(http.StatusOK, &LogoutResponse{Message: "Logged out successfully."})
}
