package userservice

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/pkg/validation"
)

// UserRepository define o contrato de persistência esperado pelo serviço.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// Service implementa a lógica de negócio da entidade User.
type Service struct {
	repo     UserRepository
	tokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do Serviço de Usuário.
func NewService(repo UserRepository, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register registra um novo usuário no sistema, com hashing da senha.
// Novos usuários entram como staff (sem direito de gestão); a promoção a
// manager/admin é feita fora desta API.
func (s *Service) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação do payload (tags validate: da struct)
	if err := validation.Struct(registration); err != nil {
		return domain.User{}, err
	}

	// 2. Hashing da Senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Persistência
	newUser := domain.User{
		Email:        registration.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleStaff,
	}

	user, err := s.repo.Save(ctx, newUser)
	if err != nil {
		// O repositório já traduz violação de unicidade para ConflictError.
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT com a role
// (que carrega o direito de gestão para edição de ajustes).
func (s *Service) Login(ctx context.Context, email string, password string) (string, error) {
	// 1. Validação Básica
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	// 2. Buscar Usuário pelo Email
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira Unauthorized para não dar dicas a invasores.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", err
	}

	// 3. Comparar Senhas (Hashing)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 4. Gerar JWT
	tokenString, err := s.tokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return tokenString, nil
}
