package services

import (
	"MediTrack/database"
	"MediTrack/models"
	"MediTrack/repositories"
	"MediTrack/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

type UserService interface {
	ValidateAndCreateUser(ctx context.Context, user *models.User) error
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	ListDoctors(ctx context.Context, specialization string) ([]models.User, error)
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, resetCode, newPassword string) error
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	lockKey := fmt.Sprintf("user_lock:%s", user.Email)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, time.Minute)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if err := utils.ValidateUserData(*user); err != nil {
		return fmt.Errorf("invalid user data: %w", err)
	}

	if exists, err := s.userRepo.EmailExists(ctx, user.Email); err != nil || exists {
		return errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	return s.userRepo.CreateUser(ctx, user)
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, errors.New("invalid email or password")
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) ListDoctors(ctx context.Context, specialization string) ([]models.User, error) {
	return s.userRepo.ListDoctors(ctx, specialization)
}

func (s *userService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		// Do not reveal whether the email is registered.
		return nil
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	return utils.SendResetCodeEmail(email, code)
}

func (s *userService) ResetPassword(ctx context.Context, email, resetCode, newPassword string) error {
	if err := utils.ValidatePasswordReset(resetCode, newPassword); err != nil {
		return err
	}

	stored, err := utils.GetResetCode(ctx, email)
	if err != nil {
		return err
	}
	if stored == nil || *stored != resetCode {
		return utils.ErrInvalidResetCode
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdateUserPassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}
	return utils.DeleteResetCode(ctx, email)
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.DeleteUser(ctx, userID)
}
