package dto

// CrearProveedorRequest body para POST /api/proveedores.
type CrearProveedorRequest struct {
	Nombre    string `json:"nombre"`
	NIT       string `json:"nit,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// ActualizarProveedorRequest body para PUT /api/proveedores/{id}.
type ActualizarProveedorRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	NIT       *string `json:"nit,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

// ProveedorResponse proveedor.
type ProveedorResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	NIT       string `json:"nit,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Activo    bool   `json:"activo"`
}

// ProveedorListResponse listado paginado de proveedores.
type ProveedorListResponse struct {
	Items []ProveedorResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
