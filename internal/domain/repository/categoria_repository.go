package repository

import "github.com/tiendafacil/backoffice-api/internal/domain/entity"

// CategoriaRepository define el puerto de persistencia para categorías.
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByID(id string) (*entity.Categoria, error)
	List(limit, offset int) ([]*entity.Categoria, error)
	Update(categoria *entity.Categoria) error
	Delete(id string) error
}
