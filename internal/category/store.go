package category

import (
	"context"

	database "github.com/sebuszqo/firetrack/internal/db"
	"github.com/sebuszqo/firetrack/internal/user"
)

// Store binds the package level operations to one database handle.
type Store interface {
	Create(ctx context.Context, u *user.User, name string, description *string, parent *Category) (*Category, error)
	Read(ctx context.Context, id int) *Category
	Get(ctx context.Context, id int) (*Category, error)
	Delete(ctx context.Context, id int) error
}

type dbStore struct {
	db database.DBTX
}

func NewStore(db database.DBTX) Store {
	return &dbStore{db: db}
}

func (s *dbStore) Create(ctx context.Context, u *user.User, name string, description *string, parent *Category) (*Category, error) {
	return Create(ctx, s.db, u, name, description, parent)
}

func (s *dbStore) Read(ctx context.Context, id int) *Category {
	return Read(ctx, s.db, id)
}

func (s *dbStore) Get(ctx context.Context, id int) (*Category, error) {
	return Get(ctx, s.db, id)
}

func (s *dbStore) Delete(ctx context.Context, id int) error {
	return Delete(ctx, s.db, id)
}
