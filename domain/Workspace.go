package domain

import (
	"github.com/fundwit/go-commons/types"
)

type Workspace struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Name string `json:"name"`
	Slug string `json:"slug" gorm:"unique_index:uni_workspace_slug"`

	Creator    types.ID        `json:"creator"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type WorkspaceCreation struct {
	Name string `json:"name" binding:"required,lte=60"`
	Slug string `json:"slug" binding:"required,lte=48,workspaceslug"`
}

type WorkspaceRef struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
	Slug string   `json:"slug"`
}

// WorkspaceCreated is the result of creating a workspace together with its default team.
type WorkspaceCreated struct {
	Workspace WorkspaceCreatedRef `json:"workspace"`
	Team      TeamRef             `json:"team"`
}

type WorkspaceCreatedRef struct {
	WorkspaceRef
	Role string `json:"role"`
}
