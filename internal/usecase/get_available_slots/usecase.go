package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	scheduleResolver ScheduleResolver
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	scheduleResolver ScheduleResolver,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		scheduleResolver: scheduleResolver,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%d, service=%d, date=%s",
		req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	day := req.Date.In(uc.location)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, uc.location)

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	response := &Response{
		Date:            day,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []Slot{},
	}

	// 3. Расписание мастера на день недели
	config, err := uc.scheduleResolver.Resolve(ctx, req.StaffID, day.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve schedule for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %w", ErrInternal, err)
	}

	// 4. Валидация даты с учетом конфигурации
	window := scheduling.BookingWindow{
		MinNoticeMinutes:   config.MinBookingNoticeMinutes,
		AdvanceBookingDays: config.AdvanceBookingDays,
	}
	if err := mapDateError(window.CheckDate(day, now, uc.location)); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	hours := config.BusinessHours()
	if !hours.IsOpen {
		uc.logger.Info("GetAvailableSlots: staff=%d does not work on %s", req.StaffID, day.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Занятое время мастера на этот день
	from, to := day, day.AddDate(0, 0, 1)
	bookings, err := uc.bookingRepo.GetByStaffWithFilter(ctx, domain.StaffBookingsFilter{
		StaffID: req.StaffID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 6. Свободные окна
	slots := scheduling.ComputeAvailableSlots(scheduling.AvailabilityQuery{
		StaffID:            req.StaffID,
		Date:               day,
		DurationMinutes:    service.DurationMinutes,
		Bookings:           bookings,
		Hours:              hours,
		GranularityMinutes: config.SlotGranularityMinutes,
		NotBefore:          window.EarliestStart(now),
		ExcludeBookingID:   req.ExcludeBookingID,
		Location:           uc.location,
	})
	response.Slots = toSlots(slots)

	uc.logger.Info("GetAvailableSlots: found %d slots for staff=%d, service=%d, date=%s",
		len(slots), req.StaffID, req.ServiceID, day.Format(domain.DateFormat))

	return response, nil
}
