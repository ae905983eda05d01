package category

import (
	"errors"
	"fmt"
)

// ErrCategoryNotFound is returned by Get when no category has the requested ID.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryAlreadyExistsError is returned when the owner already has a category with the same name
// under the same parent.
type CategoryAlreadyExistsError struct {
	Name string
	// Parent is the name of the parent category, nil for root categories.
	Parent *string
}

func (e *CategoryAlreadyExistsError) Error() string {
	if e.Parent != nil {
		return fmt.Sprintf("The child category '%s' already exists in the parent category '%s'", e.Name, *e.Parent)
	}
	return fmt.Sprintf("The root category '%s' already exists", e.Name)
}

// CreationFailedError wraps a database error returned while inserting a category.
type CreationFailedError struct {
	Err error
}

func (e *CreationFailedError) Error() string {
	return fmt.Sprintf("Database error when creating category: %v", e.Err)
}

func (e *CreationFailedError) Unwrap() error { return e.Err }

// DeletionFailedError wraps a database error returned while deleting a category.
type DeletionFailedError struct {
	Err error
}

func (e *DeletionFailedError) Error() string {
	return fmt.Sprintf("Database error when deleting category: %v", e.Err)
}

func (e *DeletionFailedError) Unwrap() error { return e.Err }

// HasChildrenError is returned when deleting a category that is still the parent of other categories.
type HasChildrenError struct {
	ID int
}

func (e *HasChildrenError) Error() string {
	return fmt.Sprintf("The category with ID %d could not be deleted because it has child categories", e.ID)
}

// MissingDataError is returned when a required field is empty.
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("Missing data for field: %s", e.Field)
}

// NotDeletedError is returned when the category to delete does not exist.
type NotDeletedError struct {
	ID int
}

func (e *NotDeletedError) Error() string {
	return fmt.Sprintf("Could not delete category %d because it does not exist", e.ID)
}

// ParentCategoryHasWrongUserError is returned when the parent passed to Create belongs to another user.
type ParentCategoryHasWrongUserError struct {
	// UserID is the user the category was being created for.
	UserID int
	// ParentUserID is the actual owner of the parent category.
	ParentUserID int
}

func (e *ParentCategoryHasWrongUserError) Error() string {
	return fmt.Sprintf("Expected parent category for user %d instead of user %d", e.UserID, e.ParentUserID)
}
