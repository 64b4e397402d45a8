package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido y datos básicos del empleado.
type LoginResponse struct {
	Token      string `json:"token"`
	EmpleadoID string `json:"empleado_id"`
	Nombre     string `json:"nombre"`
	Rol        string `json:"rol"`
}

// RegistrarEmpleadoRequest body para POST /api/auth/registrar.
type RegistrarEmpleadoRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

// EmpleadoResponse empleado sin campos sensibles.
type EmpleadoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
	Activo bool   `json:"activo"`
}
