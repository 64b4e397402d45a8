package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiendafacil/backoffice-api/internal/application/dto"
	"github.com/tiendafacil/backoffice-api/internal/domain"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
	pkgjwt "github.com/tiendafacil/backoffice-api/pkg/jwt"
)

// JWTConfig parámetros para emitir tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y registro de empleados. El resto del sistema solo consume
// el empleado_id del token como identidad de atribución.
type AuthUseCase struct {
	empleados repository.EmpleadoRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(empleados repository.EmpleadoRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{empleados: empleados, jwtCfg: jwtCfg}
}

// Login verifica credenciales y emite un JWT con empleado_id y rol.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrEntradaInvalida
	}
	empleado, err := uc.empleados.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if empleado == nil || !empleado.Activo {
		return nil, domain.ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(empleado.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrCredenciales
	}
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, empleado.ID, empleado.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:      token,
		EmpleadoID: empleado.ID,
		Nombre:     empleado.Nombre,
		Rol:        empleado.Rol,
	}, nil
}

// Registrar crea un empleado nuevo con la contraseña hasheada (bcrypt).
func (uc *AuthUseCase) Registrar(in dto.RegistrarEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	if in.Nombre == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrEntradaInvalida
	}
	existente, _ := uc.empleados.GetByEmail(in.Email)
	if existente != nil {
		return nil, domain.ErrDuplicado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rol := in.Rol
	if rol == "" {
		rol = "vendedor"
	}
	now := time.Now()
	empleado := &entity.Empleado{
		ID:           uuid.New().String(),
		Nombre:       in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.empleados.Create(empleado); err != nil {
		return nil, err
	}
	return &dto.EmpleadoResponse{
		ID:     empleado.ID,
		Nombre: empleado.Nombre,
		Email:  empleado.Email,
		Rol:    empleado.Rol,
		Activo: empleado.Activo,
	}, nil
}
