package membership

import (
	"tracker/bizerror"
	"tracker/domain"
	"tracker/persistence"
	"tracker/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// QueryWorkspaceRole returns the caller's role in the workspace, or "" when the caller is not a member.
func QueryWorkspaceRole(workspaceID types.ID, sec *session.Session) (string, error) {
	return queryRole(persistence.ActiveDataSourceManager.GormDB(sec.Context), workspaceID, sec.Identity.ID)
}

// RequireWorkspaceMember fails with ErrForbidden unless uid belongs to the workspace.
func RequireWorkspaceMember(tx *gorm.DB, workspaceID, uid types.ID) (string, error) {
	role, err := queryRole(tx, workspaceID, uid)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", bizerror.ErrForbidden
	}
	return role, nil
}

func queryRole(db *gorm.DB, workspaceID, uid types.ID) (string, error) {
	var founds []domain.Membership
	if err := db.Model(&domain.Membership{}).Where(&domain.Membership{WorkspaceID: workspaceID, MemberID: uid}).
		Find(&founds).Error; err != nil {
		return "", err
	}
	if len(founds) == 0 {
		return "", nil
	}
	return founds[0].Role, nil
}

func QueryWorkspaceIDs(sec *session.Session) ([]types.ID, error) {
	var ids []types.ID
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	if err := db.Model(&domain.Membership{}).Where(&domain.Membership{MemberID: sec.Identity.ID}).
		Pluck("workspace_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// QueryMemberships lists the caller's workspaces with role and the teams the caller has joined.
func QueryMemberships(sec *session.Session) ([]domain.MembershipDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	var memberships []domain.Membership
	if err := db.Where(&domain.Membership{MemberID: sec.Identity.ID}).Order("create_time ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []domain.MembershipDetail{}, nil
	}

	workspaceIDs := make([]types.ID, 0, len(memberships))
	for _, m := range memberships {
		workspaceIDs = append(workspaceIDs, m.WorkspaceID)
	}
	var workspaces []domain.Workspace
	if err := db.Where("id IN (?)", workspaceIDs).Find(&workspaces).Error; err != nil {
		return nil, err
	}
	workspaceMap := map[types.ID]domain.Workspace{}
	for _, w := range workspaces {
		workspaceMap[w.ID] = w
	}

	type joinedTeam struct {
		domain.Team
		MemberRole string
	}
	var joined []joinedTeam
	if err := db.Table("teams").Select("teams.*, team_members.role AS member_role").
		Joins("INNER JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.member_id = ? AND teams.workspace_id IN (?) AND teams.archived = ?", sec.Identity.ID, workspaceIDs, false).
		Order("teams.create_time ASC").Scan(&joined).Error; err != nil {
		return nil, err
	}
	teamsByWorkspace := map[types.ID][]domain.TeamRef{}
	for _, t := range joined {
		role := t.MemberRole
		if role == "" {
			role = domain.TeamRoleMember
		}
		teamsByWorkspace[t.WorkspaceID] = append(teamsByWorkspace[t.WorkspaceID], domain.TeamRef{ID: t.ID, Name: t.Name, Slug: t.Slug, Role: role})
	}

	result := make([]domain.MembershipDetail, 0, len(memberships))
	for _, m := range memberships {
		w, found := workspaceMap[m.WorkspaceID]
		if !found {
			continue
		}
		teams := teamsByWorkspace[m.WorkspaceID]
		if teams == nil {
			teams = []domain.TeamRef{}
		}
		result = append(result, domain.MembershipDetail{
			Workspace: domain.WorkspaceRef{ID: w.ID, Name: w.Name, Slug: w.Slug},
			Role:      m.Role,
			Teams:     teams,
		})
	}
	return result, nil
}
