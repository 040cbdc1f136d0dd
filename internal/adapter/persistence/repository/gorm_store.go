package repository

import (
	"context"
	"errors"

	"garage_admin/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore keeps one record type in the table its TableName names.
type gormStore[R record] struct {
	db *gorm.DB
}

var _ recordStore[customerRecord] = (*gormStore[customerRecord])(nil)

func newGormStore[R record](db *gorm.DB) *gormStore[R] {
	return &gormStore[R]{db: db}
}

func (s *gormStore[R]) scan(ctx context.Context) ([]R, error) {
	rows := make([]R, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore[R]) findBy(ctx context.Context, field, value string) ([]R, error) {
	rows := make([]R, 0)
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore[R]) get(ctx context.Context, id string) (R, bool, error) {
	var r R
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r, false, nil
	}
	if err != nil {
		return r, false, err
	}
	return r, true, nil
}

func (s *gormStore[R]) insert(ctx context.Context, r R) error {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&r)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return interfaces.ErrAlreadyExists
	}
	return nil
}

func (s *gormStore[R]) replace(ctx context.Context, r R) (bool, error) {
	res := s.db.WithContext(ctx).Model(new(R)).Where("id = ?", r.key()).Select("*").Updates(&r)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore[R]) remove(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(R))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore[R]) swap(ctx context.Context, id, field, from, to string) (R, bool, error) {
	var zero R
	res := s.db.WithContext(ctx).Model(new(R)).
		Where("id = ?", id).
		Where(clause.Eq{Column: clause.Column{Name: field}, Value: from}).
		Update(field, to)
	if res.Error != nil {
		return zero, false, res.Error
	}
	if res.RowsAffected == 0 {
		return zero, false, nil
	}
	return s.get(ctx, id)
}
