package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"garage_admin/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidInput = errors.New("invalid input")
)

// ICrudUseCase is the list/get/create/update/delete contract every garage
// resource exposes.
type ICrudUseCase[E any] interface {
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, id string, e E) (E, error)
	Delete(ctx context.Context, id string) error
}

// entityRules carries the per-entity knowledge the generic use case needs.
type entityRules[E any] struct {
	// resource names the entity in logs and errors ("customer").
	resource string
	idOf     func(E) string
	withID   func(E, string) E
	// prepare normalizes and validates e before it is written. existing is
	// the stored record on update and the zero value on create.
	prepare func(ctx context.Context, e E, existing E, creating bool) (E, error)
}

// CrudUseCase implements ICrudUseCase on top of an entity repository.
//
// Deletes never cascade and never check for dependents; records that point
// at a deleted entity are left dangling on purpose.
type CrudUseCase[E any] struct {
	repo  interfaces.IRepository[E]
	rules entityRules[E]
	log   *logrus.Entry
}

var _ ICrudUseCase[struct{}] = (*CrudUseCase[struct{}])(nil)

func newCrudUseCase[E any](repo interfaces.IRepository[E], rules entityRules[E]) *CrudUseCase[E] {
	return &CrudUseCase[E]{
		repo:  repo,
		rules: rules,
		log:   logrus.WithField("resource", rules.resource),
	}
}

func (u *CrudUseCase[E]) notFound() error {
	return fmt.Errorf("%s %w", u.rules.resource, ErrNotFound)
}

func (u *CrudUseCase[E]) List(ctx context.Context) ([]E, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		u.log.WithError(err).Error("[crud][usecase] list failed")
		return nil, err
	}
	return items, nil
}

func (u *CrudUseCase[E]) GetByID(ctx context.Context, id string) (E, error) {
	var zero E
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrInvalidID
	}

	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if u.rules.idOf(e) == "" {
		return zero, u.notFound()
	}
	return e, nil
}

func (u *CrudUseCase[E]) Create(ctx context.Context, e E) (E, error) {
	var zero E
	prepared, err := u.prepare(ctx, e, zero, true)
	if err != nil {
		return zero, err
	}
	prepared = u.rules.withID(prepared, uuid.NewString())

	created, err := u.repo.Create(ctx, prepared)
	if err != nil {
		u.log.WithError(err).Error("[crud][usecase] create failed")
		return zero, err
	}
	u.log.WithField("id", u.rules.idOf(created)).Info("[crud][usecase] created")
	return created, nil
}

func (u *CrudUseCase[E]) Update(ctx context.Context, id string, e E) (E, error) {
	var zero E
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrInvalidID
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if u.rules.idOf(existing) == "" {
		return zero, u.notFound()
	}

	prepared, err := u.prepare(ctx, e, existing, false)
	if err != nil {
		return zero, err
	}
	prepared = u.rules.withID(prepared, id)

	updated, err := u.repo.Update(ctx, prepared)
	if err != nil {
		u.log.WithError(err).WithField("id", id).Error("[crud][usecase] update failed")
		return zero, err
	}
	if u.rules.idOf(updated) == "" {
		return zero, u.notFound()
	}
	u.log.WithField("id", id).Info("[crud][usecase] updated")
	return updated, nil
}

func (u *CrudUseCase[E]) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidID
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		u.log.WithError(err).WithField("id", id).Error("[crud][usecase] delete failed")
		return err
	}
	if !deleted {
		return u.notFound()
	}
	u.log.WithField("id", id).Info("[crud][usecase] deleted")
	return nil
}

func (u *CrudUseCase[E]) prepare(ctx context.Context, e, existing E, creating bool) (E, error) {
	if u.rules.prepare == nil {
		return e, nil
	}
	return u.rules.prepare(ctx, e, existing, creating)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
