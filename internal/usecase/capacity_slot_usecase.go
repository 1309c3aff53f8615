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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCapacitySlotNotFound = apperror.New(apperror.CodeNotFound, "capacity slot not found")
	ErrCapacitySlotExists   = apperror.New(apperror.CodeAlreadyExists, "a capacity slot already covers that range")
)

type CapacitySlotUsecase interface {
	ListCapacitySlots(ctx context.Context) (*dto.CapacitySlotListResponse, error)
	GetCapacitySlot(ctx context.Context, id int) (*dto.CapacitySlotResponse, error)
	CreateCapacitySlot(ctx context.Context, req *dto.CreateCapacitySlotRequest) (*dto.CapacitySlotResponse, error)
	UpdateCapacitySlot(ctx context.Context, id int, req *dto.UpdateCapacitySlotRequest) (*dto.CapacitySlotResponse, error)
	DeactivateCapacitySlot(ctx context.Context, id int) error
}

// slotCacheInvalidator drops the cached capacity rule snapshot after a
// slot mutation, normally backed by the slot cache service.
type slotCacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type capacitySlotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	calendar     *scheduling.Calendar
	slotRepo     repository.CapacitySlotRepository
	slotCache    slotCacheInvalidator
	auditService service.AuditService
}

func NewCapacitySlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	calendar *scheduling.Calendar,
	slotRepo repository.CapacitySlotRepository,
	slotCache *service.SlotCacheService,
	auditService service.AuditService,
) CapacitySlotUsecase {
	return &capacitySlotUsecase{
		db:           db,
		log:          log,
		calendar:     calendar,
		slotRepo:     slotRepo,
		slotCache:    slotCache,
		auditService: auditService,
	}
}

func (u *capacitySlotUsecase) ListCapacitySlots(ctx context.Context) (*dto.CapacitySlotListResponse, error) {
	slots, err := u.slotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list capacity slots: %+v", err)
		return nil, err
	}
	return &dto.CapacitySlotListResponse{
		CapacitySlots: converter.CapacitySlotsToResponses(slots),
		Total:         len(slots),
	}, nil
}

func (u *capacitySlotUsecase) GetCapacitySlot(ctx context.Context, id int) (*dto.CapacitySlotResponse, error) {
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find capacity slot %d: %+v", id, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrCapacitySlotNotFound
	}
	return converter.CapacitySlotToResponse(slot), nil
}

func (u *capacitySlotUsecase) CreateCapacitySlot(ctx context.Context, req *dto.CreateCapacitySlotRequest) (*dto.CapacitySlotResponse, error) {
	dayOfWeek := toWeekday(req.DayOfWeek)
	if err := u.validateRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	existing, err := u.slotRepo.FindByRange(tx, req.StartTime, req.EndTime, dayOfWeek)
	if err != nil {
		u.log.Warnf("Failed to check existing capacity slot: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrCapacitySlotExists
	}

	slot := &entity.CapacitySlot{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
		DayOfWeek:   dayOfWeek,
		IsActive:    true,
	}
	if err := u.slotRepo.Create(tx, slot); err != nil {
		u.log.Warnf("Failed to create capacity slot: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, "admin", entity.AuditActionCapacitySlotCreate,
		"capacity_slot", fmt.Sprint(slot.ID), slot); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx)
	u.log.Infof("Capacity slot created: id=%d, range=%s-%s", slot.ID, slot.StartTime, slot.EndTime)
	return converter.CapacitySlotToResponse(slot), nil
}

func (u *capacitySlotUsecase) UpdateCapacitySlot(ctx context.Context, id int, req *dto.UpdateCapacitySlotRequest) (*dto.CapacitySlotResponse, error) {
	dayOfWeek := toWeekday(req.DayOfWeek)
	if err := u.validateRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find capacity slot %d: %+v", id, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrCapacitySlotNotFound
	}

	existing, err := u.slotRepo.FindByRange(tx, req.StartTime, req.EndTime, dayOfWeek)
	if err != nil {
		u.log.Warnf("Failed to check existing capacity slot: %+v", err)
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrCapacitySlotExists
	}

	old := *slot
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.MaxCapacity = req.MaxCapacity
	slot.DayOfWeek = dayOfWeek
	slot.IsActive = *req.IsActive

	if err := u.slotRepo.Update(tx, slot); err != nil {
		u.log.Warnf("Failed to update capacity slot %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, "admin", entity.AuditActionCapacitySlotUpdate,
		"capacity_slot", fmt.Sprint(id), old, slot); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx)
	return converter.CapacitySlotToResponse(slot), nil
}

// DeactivateCapacitySlot retires a slot definition without erasing it, so
// past audit entries keep pointing at a real row. A slot that is missing or
// already inactive reports not found.
func (u *capacitySlotUsecase) DeactivateCapacitySlot(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	affected, err := u.slotRepo.Deactivate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate capacity slot %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrCapacitySlotNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, "admin", entity.AuditActionCapacitySlotDeactivate,
		"capacity_slot", fmt.Sprint(id), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.slotCache.Invalidate(ctx)
	u.log.Infof("Capacity slot deactivated: id=%d", id)
	return nil
}

// validateRange checks that the slot range is well-formed and lands on
// capacity bucket boundaries.
func (u *capacitySlotUsecase) validateRange(startTime, endTime string) error {
	start, err := scheduling.ParseClock(startTime)
	if err != nil {
		return apperror.New(apperror.CodeTimeInvalid, "invalid start time")
	}
	end, err := scheduling.ParseClock(endTime)
	if err != nil {
		return apperror.New(apperror.CodeTimeInvalid, "invalid end time")
	}
	if start >= end {
		return apperror.New(apperror.CodeTimeInvalid, "start time must precede end time")
	}

	unitMin := int(u.calendar.CapacityUnit() / time.Minute)
	if start%unitMin != 0 || end%unitMin != 0 {
		return apperror.New(apperror.CodeTimeInvalid,
			fmt.Sprintf("capacity slot bounds must align to %d-minute boundaries", unitMin))
	}
	return nil
}

func toWeekday(day *int) *time.Weekday {
	if day == nil {
		return nil
	}
	d := time.Weekday(*day)
	return &d
}
