package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"workhub"
	"workhub/internal/api/handler/mapper"
	"workhub/internal/api/handler/request"
	"workhub/internal/api/handler/response"
	"workhub/internal/api/models"
	"workhub/internal/api/repo"
	"workhub/pkg"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo   *repo.UserRepository
	teamRepo   *repo.TeamRepository
	mail       *MailService
	config     workhub.AppConfig
	logger     zerolog.Logger
	userMapper mapper.UserMapper
}

func NewUserService() *UserService {
	return &UserService{
		userRepo: repo.NewUserRepository(),
		teamRepo: repo.NewTeamRepository(),
		mail:     NewMailService(),
		config:   workhub.GetConfig(),
		logger:   workhub.Logger,
	}
}

// Register creates a manager account together with a fresh team. Workers
// never self-register; their manager invites them via CreateWorker.
func (slf *UserService) Register(registerDTO request.RegisterDTO) (*response.AuthResponseDTO, error) {
	exists, err := slf.userRepo.ExistsByEmail(registerDTO.Email)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error checking if user exists")
		return nil, err
	}
	if exists {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registerDTO.Password), bcrypt.DefaultCost)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	team := models.Team{Name: registerDTO.TeamName}
	if err = slf.teamRepo.Create(&team); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating team")
		return nil, err
	}

	user := models.User{
		TeamID:   team.ID,
		Email:    registerDTO.Email,
		Password: string(hashedPassword),
		FullName: registerDTO.FullName,
		Role:     models.RoleManager,
		Actif:    true,
	}
	if err = slf.userRepo.Create(&user); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return slf.issueTokens(user)
}

// CreateWorker invites a worker onto the calling manager's team. The worker
// gets a generated temporary password by email and must change it on first
// login.
func (slf *UserService) CreateWorker(managerID uint, dto request.CreateWorkerDTO) (response.UserResponseDTO, error) {
	manager, err := slf.userRepo.FindByID(managerID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", managerID).Msg("Error finding manager")
		return response.UserResponseDTO{}, err
	}
	if manager.Role != models.RoleManager {
		return response.UserResponseDTO{}, errors.New("only managers can create worker accounts")
	}

	exists, err := slf.userRepo.ExistsByEmail(dto.Email)
	if err != nil {
		return response.UserResponseDTO{}, err
	}
	if exists {
		return response.UserResponseDTO{}, errors.New("user with this email already exists")
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return response.UserResponseDTO{}, err
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.UserResponseDTO{}, err
	}

	worker := models.User{
		TeamID:     manager.TeamID,
		Email:      dto.Email,
		Password:   string(hashedPassword),
		FullName:   dto.FullName,
		Role:       models.RoleWorker,
		ForceReset: true,
		Actif:      true,
	}
	if err = slf.userRepo.Create(&worker); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating worker")
		return response.UserResponseDTO{}, err
	}

	if err := slf.mail.SendWorkerRegistration(worker, tempPassword); err != nil {
		slf.logger.Warn().Err(err).Str("email", worker.Email).Msg("Registration email not sent")
	}

	slf.logger.Info().Uint("managerId", managerID).Uint("workerId", worker.ID).Msg("Worker account created")
	return slf.userMapper.EntityToUserResponse(worker), nil
}

func (slf *UserService) Login(loginDTO request.LoginDTO) (*response.AuthResponseDTO, error) {
	user, err := slf.userRepo.FindByEmail(loginDTO.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		slf.logger.Error().Err(err).Msg("Error finding user by email")
		return nil, err
	}

	if !user.Actif {
		return nil, errors.New("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginDTO.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return slf.issueTokens(user)
}

// ChangePassword verifies the current password and replaces it. It also
// clears force_reset, so invited workers leave the temporary-password state.
func (slf *UserService) ChangePassword(userID uint, dto request.ChangePasswordDTO) error {
	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.CurrentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	user.ForceReset = false
	if err = slf.userRepo.Update(&user); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error updating password")
		return err
	}

	slf.logger.Info().Uint("userId", userID).Msg("Password changed")
	return nil
}

func (slf *UserService) GetByID(id uint) (response.UserResponseDTO, error) {
	user, err := slf.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.UserResponseDTO{}, errors.New("user not found")
		}
		slf.logger.Error().Err(err).Uint("userId", id).Msg("Error finding user by ID")
		return response.UserResponseDTO{}, err
	}

	return slf.userMapper.EntityToUserResponse(user), nil
}

func (slf *UserService) GetTeamMembers(teamID uint) ([]response.UserResponseDTO, error) {
	users, err := slf.userRepo.FindByTeam(teamID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("teamId", teamID).Msg("Error listing team members")
		return nil, err
	}

	out := make([]response.UserResponseDTO, 0, len(users))
	for _, user := range users {
		out = append(out, slf.userMapper.EntityToUserResponse(user))
	}
	return out, nil
}

func (slf *UserService) RefreshToken(refreshToken string) (response.AuthResponseDTO, error) {
	claims, err := pkg.ValidateRefreshToken(refreshToken, slf.config.JWTConfig.Secret)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Invalid refresh token")
		return response.AuthResponseDTO{}, errors.New("invalid or expired refresh token")
	}

	user, err := slf.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.AuthResponseDTO{}, errors.New("user not found")
		}
		slf.logger.Error().Err(err).Uint("userId", claims.UserID).Msg("Error finding user by ID")
		return response.AuthResponseDTO{}, err
	}

	if !user.Actif {
		return response.AuthResponseDTO{}, errors.New("account is inactive")
	}

	if user.RefreshToken != refreshToken {
		slf.logger.Warn().Uint("userId", user.ID).Msg("Refresh token mismatch")
		return response.AuthResponseDTO{}, errors.New("invalid refresh token")
	}

	auth, err := slf.issueTokens(user)
	if err != nil {
		return response.AuthResponseDTO{}, err
	}
	return *auth, nil
}

func (slf *UserService) issueTokens(user models.User) (*response.AuthResponseDTO, error) {
	token, err := pkg.GenerateToken(user.ID, user.Email, user.Role, slf.config.JWTConfig.Secret, slf.config.JWTConfig.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return nil, err
	}

	refreshToken, err := pkg.GenerateRefreshToken(user.ID, slf.config.JWTConfig.Secret, slf.config.JWTConfig.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return nil, err
	}

	user.RefreshToken = refreshToken
	if err = slf.userRepo.Update(&user); err != nil {
		slf.logger.Error().Err(err).Msg("Error updating user with refresh token")
		return nil, err
	}

	slf.logger.Info().Uint("userId", user.ID).Msg("User authenticated")
	return &response.AuthResponseDTO{
		Token:        token,
		RefreshToken: refreshToken,
		ForceReset:   user.ForceReset,
		User:         slf.userMapper.EntityToUserResponse(user),
	}, nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
