package dto

// CrearCategoriaRequest body para POST /api/categorias.
type CrearCategoriaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// ActualizarCategoriaRequest body para PUT /api/categorias/{id}.
type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
}

// CategoriaResponse categoría del catálogo.
type CategoriaResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// CategoriaListResponse listado de categorías.
type CategoriaListResponse struct {
	Items []CategoriaResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
