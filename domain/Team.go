package domain

import (
	"github.com/fundwit/go-commons/types"
)

const (
	TeamRoleAdmin  = "admin"
	TeamRoleMember = "member"
	TeamRoleGuest  = "guest"
)

type Team struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Name        string   `json:"name"`
	Slug        string   `json:"slug" gorm:"unique_index:uni_team_workspace_slug"`
	Description string   `json:"description" sql:"type:TEXT"`
	WorkspaceID types.ID `json:"workspaceId" gorm:"unique_index:uni_team_workspace_slug" sql:"type:BIGINT UNSIGNED NOT NULL"`
	Archived    bool     `json:"archived"`

	Creator    types.ID        `json:"creator"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type TeamMember struct {
	TeamID   types.ID `json:"teamId" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`
	MemberID types.ID `json:"memberId" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`

	Role     string          `json:"role"`
	JoinTime types.Timestamp `json:"joinTime" sql:"type:DATETIME(6) NOT NULL"`
}

// IssueSequence holds the last issue number handed out for a team.
type IssueSequence struct {
	TeamID     types.ID `json:"teamId" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`
	CurrentVal int64    `json:"currentVal" sql:"type:BIGINT UNSIGNED NOT NULL"`
}

type TeamCreation struct {
	Name        string   `json:"name" binding:"required,gte=2,lte=60"`
	Slug        string   `json:"slug" binding:"required,gte=2,lte=7,teamslug"`
	WorkspaceID types.ID `json:"workspaceId" binding:"required"`
	Description string   `json:"description" binding:"lte=1000"`
}

type TeamQuery struct {
	WorkspaceID types.ID `json:"workspaceId" form:"workspaceId" binding:"required"`
}

type TeamRef struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
	Slug string   `json:"slug"`
	Role string   `json:"role,omitempty"`
}

type TeamMemberDetail struct {
	TeamMember

	MemberName string `json:"memberName"`
}

type TeamDetail struct {
	Team

	Members []TeamMemberDetail `json:"members"`
}
