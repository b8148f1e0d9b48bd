package sessions

import (
	"errors"
	"net/http"
	"tracker/account"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/domain/membership"
	"tracker/session"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

var (
	FindUserFunc         = account.FindUser
	QueryMembershipsFunc = membership.QueryMemberships
)

type SessionDetail struct {
	User        account.UserInfo          `json:"user"`
	Memberships []domain.MembershipDetail `json:"memberships"`
}

func RegisterSessionHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/api/auth", middleWares...)
	g.GET("/me", DetailSessionHandler)
}

func DetailSessionHandler(c *gin.Context) {
	sec := session.ExtractSessionFromGinContext(c)
	user, err := FindUserFunc(sec.Identity.ID, sec.Context)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// token outlived its account
			panic(bizerror.ErrUnauthenticated)
		}
		panic(err)
	}
	memberships, err := QueryMembershipsFunc(sec)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &SessionDetail{User: *user, Memberships: memberships})
}
