package domain

import (
	"github.com/fundwit/go-commons/types"
)

const (
	WorkspaceRoleAdmin  = "admin"
	WorkspaceRoleMember = "member"
	WorkspaceRoleViewer = "viewer"
)

// Membership binds a user to a workspace.
type Membership struct {
	WorkspaceID types.ID `json:"workspaceId" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`
	MemberID    types.ID `json:"memberId" gorm:"primary_key;auto_increment:false" sql:"type:BIGINT UNSIGNED NOT NULL"`

	Role       string          `json:"role"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type MembershipDetail struct {
	Workspace WorkspaceRef `json:"workspace"`
	Role      string       `json:"role"`
	Teams     []TeamRef    `json:"teams"`
}
