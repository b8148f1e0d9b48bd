package account

import (
	"net/http"
	"tracker/bizerror"
	"tracker/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	CreateUserFunc = CreateUser
)

func RegisterUsersHandler(r *gin.Engine) {
	g := r.Group("/api/auth")
	g.POST("/signup", SignupHandler)
}

func SignupHandler(c *gin.Context) {
	creation := UserCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	user, err := CreateUserFunc(&creation, c.Request.Context())
	if err != nil {
		panic(err)
	}

	s, err := session.ActiveTokenManager.Sign(session.Identity{ID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		panic(err)
	}
	session.SetTokenCookie(c, s)
	c.JSON(http.StatusCreated, &UserResponse{Message: "User registered successfully", User: *user})
}
