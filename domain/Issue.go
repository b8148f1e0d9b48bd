package domain

import (
	"fmt"

	"github.com/fundwit/go-commons/types"
)

type IssueStatus string

const (
	IssueStatusBacklog    IssueStatus = "backlog"
	IssueStatusTodo       IssueStatus = "todo"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusDone       IssueStatus = "done"
)

type IssuePriority string

const (
	IssuePriorityNone   IssuePriority = "no_priority"
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
	IssuePriorityUrgent IssuePriority = "urgent"
)

const (
	DefaultIssuePageLimit = 20
	MaxIssuePageLimit     = 100
)

type Issue struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Title       string `json:"title"`
	Description string `json:"description" sql:"type:TEXT"`

	// unique within the workspace, team slugs repeat across workspaces
	Identifier string `json:"identifier" gorm:"unique_index:uni_issue_workspace_identifier"`
	Number     int64  `json:"number" gorm:"unique_index:uni_issue_team_number" sql:"type:BIGINT UNSIGNED NOT NULL"`

	Status   IssueStatus   `json:"status"`
	Priority IssuePriority `json:"priority"`

	TeamID      types.ID  `json:"teamId" gorm:"unique_index:uni_issue_team_number" sql:"type:BIGINT UNSIGNED NOT NULL"`
	WorkspaceID types.ID  `json:"workspaceId" gorm:"unique_index:uni_issue_workspace_identifier" sql:"type:BIGINT UNSIGNED NOT NULL"`
	AssigneeID  *types.ID `json:"assigneeId" gorm:"index:idx_issue_assignee"`

	Creator    types.ID        `json:"creator"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

// FormatIssueIdentifier joins a team slug and an issue number, e.g. ENG-123.
func FormatIssueIdentifier(teamSlug string, number int64) string {
	return fmt.Sprintf("%s-%d", teamSlug, number)
}

type IssueCreation struct {
	Title       string        `json:"title" binding:"required,lte=255"`
	TeamID      types.ID      `json:"teamId" binding:"required"`
	Description string        `json:"description" binding:"lte=65535"`
	AssigneeID  *types.ID     `json:"assigneeId"`
	Priority    IssuePriority `json:"priority" binding:"omitempty,oneof=no_priority low medium high urgent"`
	Status      IssueStatus   `json:"status" binding:"omitempty,oneof=backlog todo in_progress done"`
}

type IssueQuery struct {
	TeamID      types.ID      `form:"teamId"`
	WorkspaceID types.ID      `form:"workspaceId"`
	AssigneeID  types.ID      `form:"assigneeId"`
	Status      IssueStatus   `form:"status" binding:"omitempty,oneof=backlog todo in_progress done"`
	Priority    IssuePriority `form:"priority" binding:"omitempty,oneof=no_priority low medium high urgent"`
	Page        int           `form:"page" binding:"omitempty,gte=1"`
	Limit       int           `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// PageAndLimit returns the requested page and limit with defaults applied.
func (q IssueQuery) PageAndLimit() (int, int) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultIssuePageLimit
	}
	if limit > MaxIssuePageLimit {
		limit = MaxIssuePageLimit
	}
	return page, limit
}

// IssueIdentifierQuery narrows an identifier lookup to one workspace.
type IssueIdentifierQuery struct {
	WorkspaceID types.ID `form:"workspaceId"`
}

type IssueDetail struct {
	Issue

	Team         TeamRef `json:"team"`
	AssigneeName string  `json:"assigneeName,omitempty"`
	CreatorName  string  `json:"creatorName"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type IssuePage struct {
	Data       []IssueDetail `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
