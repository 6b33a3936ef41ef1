package repositories

import (
	"MediTrack/cache"
	"MediTrack/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	UserCacheExpiry = 24 * time.Hour
)

type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	ListDoctors(ctx context.Context, specialization string) ([]models.User, error)
	UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error
	DeleteUser(ctx context.Context, userID string) error
	DeleteUserCache(ctx context.Context, userID string) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return r.cache.DeleteAll(ctx, "doctors_cache*")
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getUserCacheKey(userID)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			return &user, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get user from cache: %v", err)
	}

	var user models.User
	err = r.db.Select("id, name, email, role, specialization, created_at").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, userJSON, UserCacheExpiry); err != nil {
		log.Printf("Failed to set user in cache: %v", err)
	}

	return &user, nil
}

// ListDoctors returns registered doctors, optionally filtered by specialization.
func (r *userRepository) ListDoctors(ctx context.Context, specialization string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("doctors_cache:%s", specialization)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var doctors []models.User
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	query := r.db.Select("id, name, email, role, specialization, created_at").
		Where("role = ?", "doctor")
	if specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}

	var doctors []models.User
	if err := query.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	doctorsJSON, err := json.Marshal(doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctors: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, doctorsJSON, UserCacheExpiry); err != nil {
		log.Printf("Failed to set doctors in cache: %v", err)
	}

	return doctors, nil
}

func (r *userRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashedPassword)
	if result.Error != nil {
		return fmt.Errorf("failed to update user password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return r.cache.Delete(ctx, r.getUserCacheKey(userID))
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	if err := r.db.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getUserCacheKey(userID)); err != nil {
		return err
	}
	return r.cache.DeleteAll(ctx, "doctors_cache*")
}

func (r *userRepository) DeleteUserCache(ctx context.Context, userID string) error {
	return r.cache.Delete(ctx, r.getUserCacheKey(userID))
}

func (r *userRepository) getUserCacheKey(userID string) string {
	return fmt.Sprintf("user_cache:%s", userID)
}
