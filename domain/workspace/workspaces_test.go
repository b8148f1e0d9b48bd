package workspace_test

import (
	"context"
	"errors"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/domain/workspace"
	"tracker/persistence"
	"tracker/session"
	"tracker/slug"
	"tracker/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Workspaces", func() {
	var (
		testDatabase *testinfra.TestDatabase
		sec          *session.Session
	)
	BeforeEach(func() {
		testDatabase = testinfra.StartMysqlTestDatabase("tracker")
		persistence.ActiveDataSourceManager = testDatabase.DS
		testinfra.MigrateSchema(testDatabase)
		sec = &session.Session{Context: context.TODO(), Identity: session.Identity{ID: 1, Name: "ann"}}
	})
	AfterEach(func() {
		workspace.SlugGenerator = slug.DefaultGenerator
		testinfra.StopMysqlTestDatabase(testDatabase)
	})

	count := func(model interface{}) int {
		var n int
		Expect(testDatabase.DS.GormDB(context.TODO()).Model(model).Count(&n).Error).To(BeNil())
		return n
	}

	Describe("CreateWorkspace", func() {
		It("should create workspace with admin membership and default team", func() {
			created, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: " Acme Inc ", Slug: "acme"}, sec)
			Expect(err).To(BeNil())
			Expect(created.Workspace.ID).ToNot(BeZero())
			Expect(created.Workspace.Name).To(Equal("Acme Inc"))
			Expect(created.Workspace.Slug).To(Equal("acme"))
			Expect(created.Workspace.Role).To(Equal(domain.WorkspaceRoleAdmin))
			Expect(created.Team.ID).ToNot(BeZero())
			Expect(created.Team.Name).To(Equal("acme"))
			Expect(created.Team.Slug).To(Equal("ACME"))

			db := testDatabase.DS.GormDB(context.TODO())
			var memberships []domain.Membership
			Expect(db.Find(&memberships).Error).To(BeNil())
			Expect(len(memberships)).To(Equal(1))
			Expect(memberships[0].WorkspaceID).To(Equal(created.Workspace.ID))
			Expect(memberships[0].MemberID).To(Equal(types.ID(1)))
			Expect(memberships[0].Role).To(Equal(domain.WorkspaceRoleAdmin))

			var teams []domain.Team
			Expect(db.Find(&teams).Error).To(BeNil())
			Expect(len(teams)).To(Equal(1))
			Expect(teams[0].WorkspaceID).To(Equal(created.Workspace.ID))
			Expect(teams[0].Creator).To(Equal(types.ID(1)))

			var members []domain.TeamMember
			Expect(db.Find(&members).Error).To(BeNil())
			Expect(len(members)).To(Equal(1))
			Expect(members[0].TeamID).To(Equal(created.Team.ID))
			Expect(members[0].Role).To(Equal(domain.TeamRoleAdmin))

			seq := domain.IssueSequence{}
			Expect(db.Where("team_id = ?", created.Team.ID).First(&seq).Error).To(BeNil())
			Expect(seq.CurrentVal).To(Equal(int64(0)))
		})

		It("should reject duplicated slug without creating anything", func() {
			_, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: "Acme", Slug: "acme"}, sec)
			Expect(err).To(BeNil())

			created, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: "Other", Slug: "acme"},
				&session.Session{Context: context.TODO(), Identity: session.Identity{ID: 2}})
			Expect(created).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrWorkspaceSlugTaken))
			Expect(count(&domain.Workspace{})).To(Equal(1))
			Expect(count(&domain.Membership{})).To(Equal(1))
			Expect(count(&domain.Team{})).To(Equal(1))
		})

		It("should reject slug without letters before any write", func() {
			created, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: "Numbers", Slug: "123"}, sec)
			Expect(created).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrSlugBasisEmpty))
			Expect(count(&domain.Workspace{})).To(Equal(0))
			Expect(count(&domain.Team{})).To(Equal(0))
		})

		It("should derive team slug from the letters of the first four characters", func() {
			created, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: "Mixed", Slug: "a1b2-team"}, sec)
			Expect(err).To(BeNil())
			Expect(created.Team.Slug).To(Equal("AB"))
			Expect(created.Team.Name).To(Equal("a1b2-team"))
		})

		It("should roll back everything when default team can not be created", func() {
			workspace.SlugGenerator = slug.NewGenerator(func(tx *gorm.DB, scope slug.Scope, candidate string) (bool, error) {
				return scope.Kind == slug.ScopeTeam, nil
			}, 3)

			created, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: "Acme", Slug: "acme"}, sec)
			Expect(created).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrSlugExhausted))
			Expect(count(&domain.Workspace{})).To(Equal(0))
			Expect(count(&domain.Membership{})).To(Equal(0))
			Expect(count(&domain.Team{})).To(Equal(0))
		})

		It("should return error when database action failed", func() {
			testDatabase.DS.GormDB(context.TODO()).DropTable(&domain.TeamMember{})

			created, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: "Acme", Slug: "acme"}, sec)
			Expect(created).To(BeNil())
			Expect(err).ToNot(BeNil())
			Expect(count(&domain.Workspace{})).To(Equal(0))
		})
	})

	Describe("CheckWorkspaceSlug", func() {
		It("should report whether slug is free", func() {
			Expect(workspace.CheckWorkspaceSlug(&domain.WorkspaceCreation{Name: "Acme", Slug: "acme"}, sec)).To(BeNil())

			_, err := workspace.CreateWorkspace(&domain.WorkspaceCreation{Name: "Acme", Slug: "acme"}, sec)
			Expect(err).To(BeNil())
			err = workspace.CheckWorkspaceSlug(&domain.WorkspaceCreation{Name: "Acme", Slug: "acme"}, sec)
			Expect(errors.Is(err, bizerror.ErrWorkspaceSlugTaken)).To(BeTrue())
		})
	})
})
