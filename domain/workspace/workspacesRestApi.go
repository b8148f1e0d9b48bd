package workspace

import (
	"net/http"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	WorkspaceApiRoot = "/api/workspace"

	CreateWorkspaceFunc    = CreateWorkspace
	CheckWorkspaceSlugFunc = CheckWorkspaceSlug
)

type SlugAvailability struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func RegisterWorkspaceRestApis(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(WorkspaceApiRoot, middleWares...)
	g.POST("/createworkspace", HandleCreateWorkspace)
	g.POST("/workspaceValid", HandleCheckWorkspaceSlug)
}

func HandleCreateWorkspace(c *gin.Context) {
	payload := domain.WorkspaceCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CreateWorkspaceFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func HandleCheckWorkspaceSlug(c *gin.Context) {
	payload := domain.WorkspaceCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := CheckWorkspaceSlugFunc(&payload, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &SlugAvailability{Success: true, Message: "This workspace URL is available."})
}
