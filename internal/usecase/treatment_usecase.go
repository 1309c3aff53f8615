package usecase

import (
	"context"
	"fmt"
	"time"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/scheduling"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TreatmentUsecase interface {
	ListActiveTreatments(ctx context.Context) (*dto.TreatmentListResponse, error)
	ListTreatments(ctx context.Context, page, limit int) (*dto.TreatmentListResponse, error)
	GetTreatment(ctx context.Context, id uuid.UUID) (*dto.TreatmentResponse, error)
	CreateTreatment(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	UpdateTreatment(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error)
	DeactivateTreatment(ctx context.Context, id uuid.UUID) error
}

type treatmentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	calendar      *scheduling.Calendar
	treatmentRepo repository.TreatmentRepository
	auditService  service.AuditService
}

func NewTreatmentUsecase(db *gorm.DB, log *logrus.Logger, calendar *scheduling.Calendar, treatmentRepo repository.TreatmentRepository, auditService service.AuditService) TreatmentUsecase {
	return &treatmentUsecase{
		db:            db,
		log:           log,
		calendar:      calendar,
		treatmentRepo: treatmentRepo,
		auditService:  auditService,
	}
}

func (u *treatmentUsecase) ListActiveTreatments(ctx context.Context) (*dto.TreatmentListResponse, error) {
	treatments, err := u.treatmentRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list active treatments: %+v", err)
		return nil, err
	}
	return &dto.TreatmentListResponse{
		Treatments: converter.TreatmentsToResponses(treatments),
		Total:      int64(len(treatments)),
	}, nil
}

func (u *treatmentUsecase) ListTreatments(ctx context.Context, page, limit int) (*dto.TreatmentListResponse, error) {
	page, limit = normalizePage(page, limit)
	treatments, total, err := u.treatmentRepo.FindAll(u.db.WithContext(ctx), (page-1)*limit, limit)
	if err != nil {
		u.log.Warnf("Failed to list treatments: %+v", err)
		return nil, err
	}
	return &dto.TreatmentListResponse{
		Treatments: converter.TreatmentsToResponses(treatments),
		Total:      total,
	}, nil
}

func (u *treatmentUsecase) GetTreatment(ctx context.Context, id uuid.UUID) (*dto.TreatmentResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find treatment %s: %+v", id, err)
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) CreateTreatment(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	if err := u.validateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	treatment := &entity.Treatment{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Description:     req.Description,
		IsActive:        true,
	}
	if err := u.treatmentRepo.Create(tx, treatment); err != nil {
		u.log.Warnf("Failed to create treatment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, "admin", entity.AuditActionTreatmentCreate,
		"treatment", treatment.ID.String(), treatment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Treatment created: id=%s, name=%s, duration=%dm", treatment.ID, treatment.Name, treatment.DurationMinutes)
	return converter.TreatmentToResponse(treatment), nil
}

// UpdateTreatment edits a treatment. Duration changes apply to future
// bookings only; existing appointments keep their stored end time.
func (u *treatmentUsecase) UpdateTreatment(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	if err := u.validateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	treatment, err := u.treatmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment %s: %+v", id, err)
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}

	old := *treatment
	treatment.Name = req.Name
	treatment.DurationMinutes = req.DurationMinutes
	treatment.Price = req.Price
	treatment.Description = req.Description
	treatment.IsActive = *req.IsActive

	if err := u.treatmentRepo.Update(tx, treatment); err != nil {
		u.log.Warnf("Failed to update treatment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, "admin", entity.AuditActionTreatmentUpdate,
		"treatment", id.String(), old, treatment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) DeactivateTreatment(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	affected, err := u.treatmentRepo.Deactivate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate treatment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrTreatmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, "admin", entity.AuditActionTreatmentDeactivate,
		"treatment", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Treatment deactivated: id=%s", id)
	return nil
}

// validateDuration enforces that treatment durations divide evenly into
// capacity buckets, otherwise a window would occupy a fractional bucket.
func (u *treatmentUsecase) validateDuration(minutes int) error {
	unitMin := int(u.calendar.CapacityUnit() / time.Minute)
	if minutes <= 0 || minutes%unitMin != 0 {
		return apperror.New(apperror.CodeTimeInvalid,
			fmt.Sprintf("treatment duration must be a positive multiple of %d minutes", unitMin))
	}
	return nil
}
