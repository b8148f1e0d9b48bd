package issue

import (
	"net/http"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/misc"
	"tracker/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	IssuesApiRoot = "/api/issues"

	CreateIssueFunc             = CreateIssue
	QueryIssuesFunc             = QueryIssues
	DetailIssueFunc             = DetailIssue
	DetailIssueByIdentifierFunc = DetailIssueByIdentifier
)

func RegisterIssuesRestApis(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(IssuesApiRoot, middleWares...)
	g.POST("", HandleCreateIssue)
	g.GET("", HandleQueryIssues)
	g.GET("/:id", HandleDetailIssue)
	g.GET("/identifier/:identifier", HandleDetailIssueByIdentifier)
}

func HandleCreateIssue(c *gin.Context) {
	payload := domain.IssueCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CreateIssueFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func HandleQueryIssues(c *gin.Context) {
	query := domain.IssueQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := QueryIssuesFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleDetailIssue(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := DetailIssueFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleDetailIssueByIdentifier(c *gin.Context) {
	query := domain.IssueIdentifierQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := DetailIssueByIdentifierFunc(c.Param("identifier"), query.WorkspaceID, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
