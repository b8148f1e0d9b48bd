package issue

import (
	"context"
	"errors"
	"strings"
	"tracker/account"
	"tracker/bizerror"
	"tracker/domain"
	"tracker/domain/membership"
	"tracker/idgen"
	"tracker/persistence"
	"tracker/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

var (
	idWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	errTitleBlank = errors.New("title must not be blank")
)

func CreateIssue(c *domain.IssueCreation, sec *session.Session) (*domain.IssueDetail, error) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return nil, &bizerror.ErrBadParam{Cause: errTitleBlank}
	}
	status := c.Status
	if status == "" {
		status = domain.IssueStatusBacklog
	}
	priority := c.Priority
	if priority == "" {
		priority = domain.IssuePriorityNone
	}

	var (
		issue domain.Issue
		team  domain.Team
	)
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", c.TeamID).First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bizerror.ErrTeamNotFound
			}
			return err
		}
		if _, err := membership.RequireWorkspaceMember(tx, team.WorkspaceID, sec.Identity.ID); err != nil {
			return err
		}
		if c.AssigneeID != nil {
			exists, err := account.ExistsUser(tx, *c.AssigneeID)
			if err != nil {
				return err
			}
			if !exists {
				return bizerror.ErrAssigneeNotFound
			}
		}

		number, err := NextIssueNumber(tx, team.ID)
		if err != nil {
			return err
		}
		now := types.CurrentTimestamp()
		issue = domain.Issue{
			ID:          idgen.NextID(idWorker),
			Title:       title,
			Description: strings.TrimSpace(c.Description),
			Identifier:  domain.FormatIssueIdentifier(team.Slug, number),
			Number:      number,
			Status:      status,
			Priority:    priority,
			TeamID:      team.ID,
			WorkspaceID: team.WorkspaceID,
			AssigneeID:  c.AssigneeID,
			Creator:     sec.Identity.ID,
			CreateTime:  now,
			UpdateTime:  now,
		}
		return tx.Create(&issue).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"issueId": issue.ID, "identifier": issue.Identifier}).Debug("issue created")
	details, err := buildDetails(db, []domain.Issue{issue}, sec.Context)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// QueryIssues lists issues of the caller's workspaces, newest first.
func QueryIssues(q *domain.IssueQuery, sec *session.Session) (*domain.IssuePage, error) {
	page, limit := q.PageAndLimit()
	visible, err := membership.QueryWorkspaceIDs(sec)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return &domain.IssuePage{Data: []domain.IssueDetail{}, Pagination: domain.NewPagination(page, limit, 0)}, nil
	}

	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	query := db.Model(&domain.Issue{}).Where("workspace_id IN (?)", visible)
	if q.TeamID != 0 {
		query = query.Where("team_id = ?", q.TeamID)
	}
	if q.WorkspaceID != 0 {
		query = query.Where("workspace_id = ?", q.WorkspaceID)
	}
	if q.AssigneeID != 0 {
		query = query.Where("assignee_id = ?", q.AssigneeID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		query = query.Where("priority = ?", q.Priority)
	}

	var total int
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var issues []domain.Issue
	if err := query.Order("create_time DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&issues).Error; err != nil {
		return nil, err
	}

	details, err := buildDetails(db, issues, sec.Context)
	if err != nil {
		return nil, err
	}
	return &domain.IssuePage{Data: details, Pagination: domain.NewPagination(page, limit, total)}, nil
}

func DetailIssue(id types.ID, sec *session.Session) (*domain.IssueDetail, error) {
	return detailWhere(sec, "id = ?", id)
}

// DetailIssueByIdentifier resolves the identifier among the caller's workspaces. A zero workspaceID
// searches all of them and fails with ErrIssueIdentifierAmbiguous when more than one matches.
func DetailIssueByIdentifier(identifier string, workspaceID types.ID, sec *session.Session) (*domain.IssueDetail, error) {
	visible, err := membership.QueryWorkspaceIDs(sec)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, domain.ErrNotFound
	}

	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	query := db.Where("identifier = ? AND workspace_id IN (?)", identifier, visible)
	if workspaceID != 0 {
		query = query.Where("workspace_id = ?", workspaceID)
	}
	var issues []domain.Issue
	if err := query.Limit(2).Find(&issues).Error; err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, domain.ErrNotFound
	}
	if len(issues) > 1 {
		return nil, bizerror.ErrIssueIdentifierAmbiguous
	}

	details, err := buildDetails(db, issues, sec.Context)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// detailWhere hides issues of foreign workspaces behind ErrNotFound.
func detailWhere(sec *session.Session, cond string, arg interface{}) (*domain.IssueDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	issue := domain.Issue{}
	if err := db.Where(cond, arg).First(&issue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	role, err := membership.QueryWorkspaceRole(issue.WorkspaceID, sec)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, domain.ErrNotFound
	}

	details, err := buildDetails(db, []domain.Issue{issue}, sec.Context)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func buildDetails(db *gorm.DB, issues []domain.Issue, ctx context.Context) ([]domain.IssueDetail, error) {
	if len(issues) == 0 {
		return []domain.IssueDetail{}, nil
	}

	teamIDs := map[types.ID]bool{}
	userIDs := map[types.ID]bool{}
	for _, i := range issues {
		teamIDs[i.TeamID] = true
		userIDs[i.Creator] = true
		if i.AssigneeID != nil {
			userIDs[*i.AssigneeID] = true
		}
	}

	var teams []domain.Team
	if err := db.Where("id IN (?)", keys(teamIDs)).Find(&teams).Error; err != nil {
		return nil, err
	}
	teamRefs := map[types.ID]domain.TeamRef{}
	for _, t := range teams {
		teamRefs[t.ID] = domain.TeamRef{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}

	names, err := account.QueryAccountNames(keys(userIDs), ctx)
	if err != nil {
		return nil, err
	}

	details := make([]domain.IssueDetail, 0, len(issues))
	for _, i := range issues {
		detail := domain.IssueDetail{Issue: i, Team: teamRefs[i.TeamID], CreatorName: names[i.Creator]}
		if i.AssigneeID != nil {
			detail.AssigneeName = names[*i.AssigneeID]
		}
		details = append(details, detail)
	}
	return details, nil
}

func keys(m map[types.ID]bool) []types.ID {
	result := make([]types.ID, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}
