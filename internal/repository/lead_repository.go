package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"agiliza_backend/internal/model"
)

var ErrNotFound = errors.New("record not found")

// LeadStore is the persistence surface the controllers depend on.
type LeadStore interface {
	Create(lead *model.Lead) error
	All() ([]model.Lead, error)
	UpdateStatus(id string, status model.LeadStatus) (*model.Lead, error)
	Delete(id string) error
	CountByStatus() (map[model.LeadStatus]int64, error)
	CountSince(since time.Time) (int64, error)
	CountBetween(from, to time.Time) (int64, error)
	Count() (int64, error)
}

// LeadEvents receives every successful write so the live registry can
// mirror the table without re-querying. All methods must be non-blocking.
type LeadEvents interface {
	LeadCreated(lead model.Lead)
	LeadUpdated(lead model.Lead)
	LeadDeleted(id string)
}

type LeadRepository struct {
	db     *gorm.DB
	events LeadEvents
}

func NewLeadRepository(db *gorm.DB, events LeadEvents) *LeadRepository {
	return &LeadRepository{db: db, events: events}
}

// Create inserts the lead and reloads it so the caller sees the
// database-assigned creation timestamp.
func (r *LeadRepository) Create(lead *model.Lead) error {
	if err := r.db.Create(lead).Error; err != nil {
		return err
	}
	if err := r.db.First(lead, "id = ?", lead.ID).Error; err != nil {
		return err
	}
	if r.events != nil {
		r.events.LeadCreated(*lead)
	}
	return nil
}

func (r *LeadRepository) All() ([]model.Lead, error) {
	var leads []model.Lead
	if err := r.db.Order("created_at desc").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// UpdateStatus touches only the status column. Concurrent operators are
// last-write-wins on this single field.
func (r *LeadRepository) UpdateStatus(id string, status model.LeadStatus) (*model.Lead, error) {
	var lead model.Lead
	if err := r.db.First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&lead).Update("status", status).Error; err != nil {
		return nil, err
	}

	lead.Status = status
	if r.events != nil {
		r.events.LeadUpdated(lead)
	}
	return &lead, nil
}

func (r *LeadRepository) Delete(id string) error {
	result := r.db.Delete(&model.Lead{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	if r.events != nil {
		r.events.LeadDeleted(id)
	}
	return nil
}

func (r *LeadRepository) CountByStatus() (map[model.LeadStatus]int64, error) {
	var rows []struct {
		Status model.LeadStatus
		Count  int64
	}
	err := r.db.Model(&model.Lead{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.LeadStatus]int64, len(rows))
	for _, row := range rows {
		status := row.Status
		if status == "" {
			status = model.LeadStatusNew
		}
		counts[status] += row.Count
	}
	return counts, nil
}

func (r *LeadRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lead{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *LeadRepository) CountBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lead{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *LeadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Lead{}).Count(&count).Error
	return count, err
}
