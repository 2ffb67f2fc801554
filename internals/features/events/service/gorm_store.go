package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artcc_backend/internals/features/events/model"
	usermodel "artcc_backend/internals/features/users/model"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetEvent(ctx context.Context, eventID int) (*model.EventModel, error) {
	var event model.EventModel
	err := s.db.WithContext(ctx).First(&event, "event_id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *GormStore) EventExists(ctx context.Context, eventID int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) ListEvents(ctx context.Context, offset, limit int, includeClosed bool) ([]model.EventModel, error) {
	q := s.db.WithContext(ctx).Order("event_start")
	if !includeClosed {
		q = q.Where("event_is_open = ?", true)
	}
	var events []model.EventModel
	err := q.Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

func (s *GormStore) CountEvents(ctx context.Context, includeClosed bool) (int64, error) {
	q := s.db.WithContext(ctx).Model(&model.EventModel{})
	if !includeClosed {
		q = q.Where("event_is_open = ?", true)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (s *GormStore) CreateEvent(ctx context.Context, event *model.EventModel) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *GormStore) SaveEvent(ctx context.Context, event *model.EventModel) error {
	return s.db.WithContext(ctx).Save(event).Error
}

func (s *GormStore) DeleteEvent(ctx context.Context, event *model.EventModel) error {
	return s.db.WithContext(ctx).Delete(event).Error
}

func (s *GormStore) GetPosition(ctx context.Context, positionID int) (*model.EventPositionModel, error) {
	var position model.EventPositionModel
	err := s.db.WithContext(ctx).First(&position, "event_position_id = ?", positionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (s *GormStore) ListPositions(ctx context.Context, eventID int) ([]model.EventPositionModel, error) {
	var positions []model.EventPositionModel
	err := s.db.WithContext(ctx).
		Where("event_position_event_id = ?", eventID).
		Find(&positions).Error
	return positions, err
}

func (s *GormStore) CreatePosition(ctx context.Context, position *model.EventPositionModel) error {
	return s.db.WithContext(ctx).Create(position).Error
}

func (s *GormStore) DeletePosition(ctx context.Context, position *model.EventPositionModel) error {
	return s.db.WithContext(ctx).Delete(position).Error
}

func (s *GormStore) GetRegistration(ctx context.Context, registrationID int) (*model.EventRegistrationModel, error) {
	var registration model.EventRegistrationModel
	err := s.db.WithContext(ctx).First(&registration, "event_registration_id = ?", registrationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

func (s *GormStore) GetRegistrationForUser(ctx context.Context, eventID, cid int) (*model.EventRegistrationModel, error) {
	var registration model.EventRegistrationModel
	err := s.db.WithContext(ctx).
		First(&registration, "event_registration_event_id = ? AND event_registration_user_cid = ?", eventID, cid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

func (s *GormStore) HasRegistration(ctx context.Context, eventID, cid int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ? AND event_registration_user_cid = ?", eventID, cid).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) ListRegistrationsByPositions(ctx context.Context, positionIDs []int) ([]model.EventRegistrationModel, error) {
	if len(positionIDs) == 0 {
		return []model.EventRegistrationModel{}, nil
	}
	var registrations []model.EventRegistrationModel
	err := s.db.WithContext(ctx).
		Where("event_registration_position_id IN ?", positionIDs).
		Find(&registrations).Error
	return registrations, err
}

func (s *GormStore) ListPendingRegistrationsByPositions(ctx context.Context, positionIDs []int) ([]model.EventRegistrationModel, error) {
	if len(positionIDs) == 0 {
		return []model.EventRegistrationModel{}, nil
	}
	var registrations []model.EventRegistrationModel
	err := s.db.WithContext(ctx).
		Where("event_registration_position_id IN ?", positionIDs).
		Where("event_registration_status = ?", model.RegistrationPending).
		Find(&registrations).Error
	return registrations, err
}

func (s *GormStore) ListRegistrationsByPosition(ctx context.Context, positionID int) ([]model.EventRegistrationModel, error) {
	var registrations []model.EventRegistrationModel
	err := s.db.WithContext(ctx).
		Where("event_registration_position_id = ?", positionID).
		Find(&registrations).Error
	return registrations, err
}

func (s *GormStore) CreateRegistration(ctx context.Context, registration *model.EventRegistrationModel) error {
	return s.db.WithContext(ctx).Create(registration).Error
}

func (s *GormStore) SaveRegistration(ctx context.Context, registration *model.EventRegistrationModel) error {
	return s.db.WithContext(ctx).Save(registration).Error
}

func (s *GormStore) DeleteRegistration(ctx context.Context, registration *model.EventRegistrationModel) error {
	return s.db.WithContext(ctx).Delete(registration).Error
}

func (s *GormStore) AssignRegistration(ctx context.Context, registration *model.EventRegistrationModel, position *model.EventPositionModel) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(registration).Error; err != nil {
			return err
		}
		return tx.Save(position).Error
	})
}

func (s *GormStore) ReleaseRegistration(ctx context.Context, registration *model.EventRegistrationModel, position *model.EventPositionModel) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(registration).Error; err != nil {
			return err
		}
		return tx.Save(position).Error
	})
}

// GormUserStore adapts the users table for the workflow's rating checks.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) GetUser(ctx context.Context, cid int) (*usermodel.UserModel, error) {
	var user usermodel.UserModel
	err := s.db.WithContext(ctx).First(&user, "user_cid = ?", cid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
