package team

import (
	"net/http"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	TeamsApiRoot = "/api/teams"

	CreateTeamFunc = CreateTeam
	QueryTeamsFunc = QueryTeams
)

func RegisterTeamsRestApis(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(TeamsApiRoot, middleWares...)
	g.POST("", HandleCreateTeam)
	g.GET("", HandleQueryTeams)
}

func HandleCreateTeam(c *gin.Context) {
	payload := domain.TeamCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CreateTeamFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func HandleQueryTeams(c *gin.Context) {
	query := domain.TeamQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := QueryTeamsFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
