package workspace

import (
	"strings"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/domain/team"
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

// CreateWorkspace creates the workspace, the creator's admin membership and a default team in one transaction.
// The default team is named after the workspace slug and gets a slug derived from it.
func CreateWorkspace(c *domain.WorkspaceCreation, sec *session.Session) (*domain.WorkspaceCreated, error) {
	// reject before any write when no team slug can be derived
	if slug.TeamSlugBasis(c.Slug) == "" {
		return nil, bizerror.ErrSlugBasisEmpty
	}

	now := types.CurrentTimestamp()
	w := domain.Workspace{
		ID:         idgen.NextID(idWorker),
		Name:       strings.TrimSpace(c.Name),
		Slug:       c.Slug,
		Creator:    sec.Identity.ID,
		CreateTime: now,
	}
	m := domain.Membership{WorkspaceID: w.ID, MemberID: sec.Identity.ID, Role: domain.WorkspaceRoleAdmin, CreateTime: now}
	var defaultTeam *domain.Team

	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if err := SlugGenerator.ValidateSlug(tx, w.Slug, slug.WorkspaceScope()); err != nil {
			return err
		}
		if err := tx.Create(&w).Error; err != nil {
			if persistence.IsDuplicateKeyError(err) {
				return bizerror.ErrWorkspaceSlugTaken
			}
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		teamSlug, err := SlugGenerator.DeriveSlug(tx, w.Slug, slug.TeamScope(w.ID))
		if err != nil {
			return err
		}
		defaultTeam = team.NewTeam(w.Slug, teamSlug, "", w.ID, sec.Identity.ID)
		defaultTeam.CreateTime = now
		return team.PersistTeam(tx, defaultTeam)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"workspaceId": w.ID, "slug": w.Slug, "teamSlug": defaultTeam.Slug}).Info("workspace created")
	return &domain.WorkspaceCreated{
		Workspace: domain.WorkspaceCreatedRef{
			WorkspaceRef: domain.WorkspaceRef{ID: w.ID, Name: w.Name, Slug: w.Slug},
			Role:         m.Role,
		},
		Team: domain.TeamRef{ID: defaultTeam.ID, Name: defaultTeam.Name, Slug: defaultTeam.Slug},
	}, nil
}

// CheckWorkspaceSlug reports ErrWorkspaceSlugTaken when the slug is already used.
func CheckWorkspaceSlug(c *domain.WorkspaceCreation, sec *session.Session) error {
	return SlugGenerator.ValidateSlug(persistence.ActiveDataSourceManager.GormDB(sec.Context), c.Slug, slug.WorkspaceScope())
}
