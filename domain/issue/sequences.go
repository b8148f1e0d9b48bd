package issue

import (
	"errors"
	"tracker/domain"
	"tracker/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var errIssueSequenceMissing = errors.New("issue sequence missing")

// NextIssueNumber hands out the next number of the team. It must run inside the issue creation
// transaction: the sequence row stays locked until commit and a rollback gives the number back.
func NextIssueNumber(tx *gorm.DB, teamID types.ID) (int64, error) {
	n, err := incrementSequence(tx, teamID)
	if err != nil || n > 0 {
		return n, err
	}

	// teams created before sequences existed continue after their highest issue number
	var highest struct {
		N int64
	}
	if err := tx.Model(&domain.Issue{}).Where("team_id = ?", teamID).
		Select("COALESCE(MAX(number), 0) AS n").Scan(&highest).Error; err != nil {
		return 0, err
	}
	seq := domain.IssueSequence{TeamID: teamID, CurrentVal: highest.N + 1}
	if err := tx.Create(&seq).Error; err != nil {
		if !persistence.IsDuplicateKeyError(err) {
			return 0, err
		}
		// created concurrently, increment the winner's row instead
		n, err := incrementSequence(tx, teamID)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, errIssueSequenceMissing
		}
		return n, nil
	}
	return seq.CurrentVal, nil
}

// incrementSequence returns 0 when the team has no sequence row.
func incrementSequence(tx *gorm.DB, teamID types.ID) (int64, error) {
	db := tx.Model(&domain.IssueSequence{}).Where("team_id = ?", teamID).
		UpdateColumn("current_val", gorm.Expr("current_val + ?", 1))
	if db.Error != nil {
		return 0, db.Error
	}
	if db.RowsAffected == 0 {
		return 0, nil
	}
	seq := domain.IssueSequence{}
	if err := tx.Where("team_id = ?", teamID).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.CurrentVal, nil
}
