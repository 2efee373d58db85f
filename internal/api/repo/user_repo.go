package repo

import (
	"errors"

	"workhub"
	"workhub/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already in use")

type UserRepository struct {
	Db *gorm.DB
}

func NewUserRepository() *UserRepository {
	return &UserRepository{Db: workhub.DB}
}

func (slf *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := slf.Db.Where("email = ?", email).First(&user).Error
	return user, err
}

func (slf *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := slf.Db.First(&user, id).Error
	return user, err
}

func (slf *UserRepository) Create(user *models.User) error {
	err := slf.Db.Create(user).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (slf *UserRepository) Update(user *models.User) error {
	return slf.Db.Save(user).Error
}

func (slf *UserRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.User{}, id).Error
}

func (slf *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (slf *UserRepository) FindByTeam(teamID uint) ([]models.User, error) {
	var users []models.User
	err := slf.Db.Where("team_id = ?", teamID).Find(&users).Error
	return users, err
}

func (slf *UserRepository) FindByRoleAndTeam(role string, teamID uint) ([]models.User, error) {
	var users []models.User
	err := slf.Db.Where("role = ? AND team_id = ?", role, teamID).Find(&users).Error
	return users, err
}

func (slf *UserRepository) SearchByQuery(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := slf.Db.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern).
		Limit(20).
		Find(&users).Error
	return users, err
}
