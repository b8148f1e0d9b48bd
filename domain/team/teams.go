package team

import (
	"strings"
	"tracker/account"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/domain/membership"
	"tracker/idgen"
	"tracker/persistence"
	"tracker/session"
	"tracker/slug"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

var (
	idWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	SlugGenerator = slug.DefaultGenerator
)

// NewTeam prepares a team record owned by creator. The caller decides the slug.
func NewTeam(name, teamSlug, description string, workspaceID, creator types.ID) *domain.Team {
	return &domain.Team{
		ID:          idgen.NextID(idWorker),
		Name:        name,
		Slug:        teamSlug,
		Description: description,
		WorkspaceID: workspaceID,
		Creator:     creator,
		CreateTime:  types.CurrentTimestamp(),
	}
}

// PersistTeam inserts the team, its creator as admin member and its issue sequence.
func PersistTeam(tx *gorm.DB, t *domain.Team) error {
	if err := tx.Create(t).Error; err != nil {
		if persistence.IsDuplicateKeyError(err) {
			return bizerror.ErrTeamSlugTaken
		}
		return err
	}
	member := domain.TeamMember{TeamID: t.ID, MemberID: t.Creator, Role: domain.TeamRoleAdmin, JoinTime: t.CreateTime}
	if err := tx.Create(&member).Error; err != nil {
		return err
	}
	if err := tx.Create(&domain.IssueSequence{TeamID: t.ID, CurrentVal: 0}).Error; err != nil {
		return err
	}
	return nil
}

func CreateTeam(c *domain.TeamCreation, sec *session.Session) (*domain.Team, error) {
	t := NewTeam(strings.TrimSpace(c.Name), c.Slug, strings.TrimSpace(c.Description), c.WorkspaceID, sec.Identity.ID)

	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if _, err := membership.RequireWorkspaceMember(tx, c.WorkspaceID, sec.Identity.ID); err != nil {
			return err
		}
		if err := SlugGenerator.ValidateSlug(tx, t.Slug, slug.TeamScope(c.WorkspaceID)); err != nil {
			return err
		}
		return PersistTeam(tx, t)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"teamId": t.ID, "workspaceId": t.WorkspaceID, "slug": t.Slug}).Info("team created")
	return t, nil
}

func QueryTeams(q *domain.TeamQuery, sec *session.Session) ([]domain.TeamDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	if _, err := membership.RequireWorkspaceMember(db, q.WorkspaceID, sec.Identity.ID); err != nil {
		return nil, err
	}

	var teams []domain.Team
	if err := db.Where("workspace_id = ? AND archived = ?", q.WorkspaceID, false).
		Order("create_time DESC").Order("id DESC").Find(&teams).Error; err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []domain.TeamDetail{}, nil
	}

	teamIDs := make([]types.ID, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	var members []domain.TeamMember
	if err := db.Where("team_id IN (?)", teamIDs).Order("join_time ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	memberIDs := make([]types.ID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.MemberID)
	}
	names, err := account.QueryAccountNames(memberIDs, sec.Context)
	if err != nil {
		return nil, err
	}

	membersByTeam := map[types.ID][]domain.TeamMemberDetail{}
	for _, m := range members {
		membersByTeam[m.TeamID] = append(membersByTeam[m.TeamID], domain.TeamMemberDetail{TeamMember: m, MemberName: names[m.MemberID]})
	}

	result := make([]domain.TeamDetail, 0, len(teams))
	for _, t := range teams {
		detail := domain.TeamDetail{Team: t, Members: membersByTeam[t.ID]}
		if detail.Members == nil {
			detail.Members = []domain.TeamMemberDetail{}
		}
		result = append(result, detail)
	}
	return result, nil
}
