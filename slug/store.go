package slug

import (
	"tracker/domain"

	"github.com/jinzhu/gorm"
)

func ExistsInStore(tx *gorm.DB, scope Scope, candidate string) (bool, error) {
	var q *gorm.DB
	if scope.Kind == ScopeTeam {
		q = tx.Model(&domain.Team{}).Where("workspace_id = ? AND slug = ?", scope.WorkspaceID, candidate)
	} else {
		q = tx.Model(&domain.Workspace{}).Where("slug = ?", candidate)
	}

	var count int
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
