package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/application/validation"
	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
	"github.com/jhoicas/fertipos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y sesión actual.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	resolver   *access.Resolver
	validate   *validation.Validator
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	resolver *access.Resolver,
	validate *validation.Validator,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, resolver: resolver, validate: validate, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario en una tienda existente. El rol admin no se puede auto-asignar.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	role := in.Role
	if role == "" {
		role = string(access.RoleExecutive)
	}
	user, err := NewUser(tenant.ID, in.Email, in.Password, in.Name, access.Role(role))
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token, usuario y módulos accesibles.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	role, ok := access.ParseRole(user.Role)
	if !ok {
		return nil, domain.ErrForbidden
	}
	if role != access.RoleAdmin {
		tenant, err := uc.tenantRepo.GetByID(ctx, user.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil || !tenant.IsActive {
			return nil, domain.ErrTenantSuspended
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		User:    *ToUserResponse(user),
		Session: uc.Session(role),
	}, nil
}

// Me devuelve el usuario autenticado con sus módulos y nivel.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.MeResponse{User: *ToUserResponse(user), Session: uc.Session(access.Role(user.Role))}, nil
}

// Session arma la vista de permisos de un rol. Rol desconocido: sin módulos y nivel 0.
func (uc *AuthUseCase) Session(role access.Role) dto.SessionResponse {
	mods := uc.resolver.AccessibleModules(role)
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = string(m)
	}
	level, _ := uc.resolver.RoleLevel(role)
	return dto.SessionResponse{Role: string(role), RoleLevel: level, Modules: names}
}

// NewUser arma un usuario activo con la contraseña hasheada con bcrypt.
func NewUser(tenantID, email, password, name string, role access.Role) (*entity.User, error) {
	if _, ok := access.ParseRole(string(role)); !ok {
		return nil, domain.NewFieldError("role", "rol desconocido")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         string(role),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
