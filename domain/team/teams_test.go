package team_test

import (
	"context"
	"errors"
	"tracker/account"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/domain/team"
	"tracker/persistence"
	"tracker/session"
	"tracker/slug"
	"tracker/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Teams", func() {
	var (
		testDatabase *testinfra.TestDatabase
		sec          *session.Session
	)
	BeforeEach(func() {
		testDatabase = testinfra.StartMysqlTestDatabase("tracker")
		persistence.ActiveDataSourceManager = testDatabase.DS
		testinfra.MigrateSchema(testDatabase)
		sec = &session.Session{Context: context.TODO(), Identity: session.Identity{ID: 1, Name: "ann"}}

		db := testDatabase.DS.GormDB(context.TODO())
		Expect(db.Create(&account.User{ID: 1, Name: "ann", Email: "ann@example.com", Secret: "x", CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
		Expect(db.Create(&domain.Workspace{ID: 100, Name: "Acme", Slug: "acme", Creator: 1, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
		Expect(db.Create(&domain.Workspace{ID: 200, Name: "Other", Slug: "other", Creator: 2, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
		Expect(db.Create(&domain.Membership{WorkspaceID: 100, MemberID: 1, Role: domain.WorkspaceRoleViewer, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
		Expect(db.Create(&domain.Membership{WorkspaceID: 200, MemberID: 1, Role: domain.WorkspaceRoleMember, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
	})
	AfterEach(func() {
		testinfra.StopMysqlTestDatabase(testDatabase)
	})

	Describe("CreateTeam", func() {
		It("should create team with creator as admin and an issue sequence", func() {
			t, err := team.CreateTeam(&domain.TeamCreation{Name: "Design", Slug: "DSG", WorkspaceID: 100, Description: " visual "}, sec)
			Expect(err).To(BeNil())
			Expect(t.ID).ToNot(BeZero())
			Expect(t.Name).To(Equal("Design"))
			Expect(t.Slug).To(Equal("DSG"))
			Expect(t.Description).To(Equal("visual"))
			Expect(t.WorkspaceID).To(Equal(types.ID(100)))
			Expect(t.Creator).To(Equal(types.ID(1)))
			Expect(t.Archived).To(BeFalse())

			db := testDatabase.DS.GormDB(context.TODO())
			member := domain.TeamMember{}
			Expect(db.Where("team_id = ?", t.ID).First(&member).Error).To(BeNil())
			Expect(member.MemberID).To(Equal(types.ID(1)))
			Expect(member.Role).To(Equal(domain.TeamRoleAdmin))

			seq := domain.IssueSequence{}
			Expect(db.Where("team_id = ?", t.ID).First(&seq).Error).To(BeNil())
			Expect(seq.CurrentVal).To(BeZero())
		})

		It("should keep slugs as given and reject lowercase ones", func() {
			_, err := team.CreateTeam(&domain.TeamCreation{Name: "Design", Slug: "dsg", WorkspaceID: 100}, sec)
			Expect(errors.Is(err, slug.ErrMalformedSlug)).To(BeTrue())

			var count int
			Expect(testDatabase.DS.GormDB(context.TODO()).Model(&domain.Team{}).Count(&count).Error).To(BeNil())
			Expect(count).To(BeZero())
		})

		It("should reject duplicated slug in the same workspace only", func() {
			_, err := team.CreateTeam(&domain.TeamCreation{Name: "Design", Slug: "DSG", WorkspaceID: 100}, sec)
			Expect(err).To(BeNil())

			t, err := team.CreateTeam(&domain.TeamCreation{Name: "Design 2", Slug: "DSG", WorkspaceID: 100}, sec)
			Expect(t).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrTeamSlugTaken))

			t, err = team.CreateTeam(&domain.TeamCreation{Name: "Design", Slug: "DSG", WorkspaceID: 200}, sec)
			Expect(err).To(BeNil())
			Expect(t.WorkspaceID).To(Equal(types.ID(200)))

			var n int
			Expect(testDatabase.DS.GormDB(context.TODO()).Model(&domain.Team{}).Count(&n).Error).To(BeNil())
			Expect(n).To(Equal(2))
		})

		It("should be forbidden for non members", func() {
			t, err := team.CreateTeam(&domain.TeamCreation{Name: "Design", Slug: "DSG", WorkspaceID: 300}, sec)
			Expect(t).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrForbidden))
		})
	})

	Describe("QueryTeams", func() {
		It("should list non archived teams newest first with member names", func() {
			t1, err := team.CreateTeam(&domain.TeamCreation{Name: "Design", Slug: "DSG", WorkspaceID: 100}, sec)
			Expect(err).To(BeNil())
			t2, err := team.CreateTeam(&domain.TeamCreation{Name: "Engineering", Slug: "ENG", WorkspaceID: 100}, sec)
			Expect(err).To(BeNil())
			t3, err := team.CreateTeam(&domain.TeamCreation{Name: "Archive", Slug: "ARC", WorkspaceID: 100}, sec)
			Expect(err).To(BeNil())
			Expect(testDatabase.DS.GormDB(context.TODO()).Model(&domain.Team{}).Where("id = ?", t3.ID).
				Update("archived", true).Error).To(BeNil())

			teams, err := team.QueryTeams(&domain.TeamQuery{WorkspaceID: 100}, sec)
			Expect(err).To(BeNil())
			Expect(len(teams)).To(Equal(2))
			Expect(teams[0].ID).To(Equal(t2.ID))
			Expect(teams[1].ID).To(Equal(t1.ID))
			Expect(len(teams[0].Members)).To(Equal(1))
			Expect(teams[0].Members[0].MemberID).To(Equal(types.ID(1)))
			Expect(teams[0].Members[0].MemberName).To(Equal("ann"))
		})

		It("should return empty list for workspace without teams", func() {
			teams, err := team.QueryTeams(&domain.TeamQuery{WorkspaceID: 200}, sec)
			Expect(err).To(BeNil())
			Expect(teams).To(BeEmpty())
		})

		It("should be forbidden for non members", func() {
			teams, err := team.QueryTeams(&domain.TeamQuery{WorkspaceID: 300}, sec)
			Expect(teams).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrForbidden))
		})
	})
})
