package account

import (
	"context"
	"errors"
	"strings"
	"tracker/bizerror"
	"tracker/idgen"
	"tracker/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

var (
	userIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func CreateUser(c *UserCreation, ctx context.Context) (*UserInfo, error) {
	hashed, err := HashPassword(c.Password)
	if err != nil {
		return nil, err
	}
	user := User{
		ID:         idgen.NextID(userIdWorker),
		Name:       strings.TrimSpace(c.Name),
		Email:      normalizeEmail(c.Email),
		Secret:     hashed,
		CreateTime: types.CurrentTimestamp(),
	}

	err = persistence.ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return bizerror.ErrEmailTaken
		}
		if err := tx.Create(&user).Error; err != nil {
			if persistence.IsDuplicateKeyError(err) {
				return bizerror.ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"userId": user.ID}).Info("user signed up")
	info := user.Info()
	return &info, nil
}

// Authenticate does not tell an unknown email apart from a wrong password.
func Authenticate(login *LoginRequest, ctx context.Context) (*UserInfo, error) {
	user := User{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Where("email = ?", normalizeEmail(login.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bizerror.ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(user.Secret, login.Password) {
		return nil, bizerror.ErrInvalidCredentials
	}
	info := user.Info()
	return &info, nil
}

func FindUser(id types.ID, ctx context.Context) (*UserInfo, error) {
	user := User{}
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Where(&User{ID: id}).First(&user).Error; err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

func ExistsUser(tx *gorm.DB, id types.ID) (bool, error) {
	var count int
	if err := tx.Model(&User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func QueryAccountNames(ids []types.ID, ctx context.Context) (map[types.ID]string, error) {
	if len(ids) == 0 {
		return map[types.ID]string{}, nil
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	var records []UserInfo
	if err := db.Model(&User{}).Where("id IN (?)", ids).Scan(&records).Error; err != nil {
		return nil, err
	}
	result := map[types.ID]string{}
	for _, r := range records {
		result[r.ID] = r.Name
	}
	return result, nil
}
