// Package category stores the hierarchical spending categories of a user.
//
// Categories form a forest per user: a category without a parent is a root category, and a
// name may only be used once per user and parent. Uniqueness and the "no deletion while it
// has children" rule are enforced by database constraints; the functions in this package
// translate those constraint violations into the error types defined in errors.go.
package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	database "github.com/sebuszqo/firetrack/internal/db"
	"github.com/sebuszqo/firetrack/internal/user"
)

// uniqueNameConstraint is the constraint on (user_id, parent_id, name) in schema.sql.
const uniqueNameConstraint = "categories_user_parent_name_key"

type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UserID      int     `json:"user_id"`
	ParentID    *int    `json:"parent_id"`
}

// Create stores a new category for u. The name is trimmed of surrounding Unicode whitespace.
// parent is optional and must belong to u.
func Create(ctx context.Context, db database.DBTX, u *user.User, name string, description *string, parent *Category) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &MissingDataError{Field: "category name"}
	}

	var parentID *int
	if parent != nil {
		if parent.UserID != u.ID {
			return nil, &ParentCategoryHasWrongUserError{UserID: u.ID, ParentUserID: parent.UserID}
		}
		parentID = &parent.ID
	}

	query := `
		INSERT INTO categories (name, description, user_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, user_id, parent_id
	`
	category, err := scanCategory(db.QueryRowContext(ctx, query, name, description, u.ID, parentID))
	if err != nil {
		if database.IsUniqueViolation(err) && database.ConstraintName(err) == uniqueNameConstraint {
			exists := &CategoryAlreadyExistsError{Name: name}
			if parent != nil {
				parentName := parent.Name
				exists.Parent = &parentName
			}
			return nil, exists
		}
		return nil, &CreationFailedError{Err: err}
	}

	return category, nil
}

// Get returns the category with the given ID, or ErrCategoryNotFound.
func Get(ctx context.Context, db database.DBTX, id int) (*Category, error) {
	if !validID(id) {
		return nil, fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
	}

	query := `
		SELECT id, name, description, user_id, parent_id
		FROM categories
		WHERE id = $1
	`
	category, err := scanCategory(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// Read returns the category with the given ID. It returns nil both when the category does not
// exist and when the lookup fails; use Get to tell the two apart.
func Read(ctx context.Context, db database.DBTX, id int) *Category {
	category, err := Get(ctx, db, id)
	if err != nil {
		return nil
	}
	return category
}

// Delete removes the category with the given ID. Categories that still have children cannot
// be deleted.
func Delete(ctx context.Context, db database.DBTX, id int) error {
	if !validID(id) {
		return &NotDeletedError{ID: id}
	}

	result, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return &HasChildrenError{ID: id}
		}
		return &DeletionFailedError{Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &DeletionFailedError{Err: err}
	}
	if affected == 0 {
		return &NotDeletedError{ID: id}
	}

	return nil
}

// validID reports whether id fits the INTEGER id column. Larger values cannot name a category.
func validID(id int) bool {
	return int64(id) >= math.MinInt32 && int64(id) <= math.MaxInt32
}

func scanCategory(row *sql.Row) (*Category, error) {
	var (
		category    Category
		description sql.NullString
		parentID    sql.NullInt32
	)
	if err := row.Scan(&category.ID, &category.Name, &description, &category.UserID, &parentID); err != nil {
		return nil, err
	}
	if description.Valid {
		category.Description = &description.String
	}
	if parentID.Valid {
		id := int(parentID.Int32)
		category.ParentID = &id
	}
	return &category, nil
}
