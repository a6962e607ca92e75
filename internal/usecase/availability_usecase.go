package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	// ErrAvailabilityLookup marks a failed data-store fetch. Callers can tell
	// it apart from a legitimately empty slot list.
	ErrAvailabilityLookup = errors.New("availability lookup failed")
	// ErrInvalidTimeData marks a malformed availability window (bad "HH:MM"
	// string or start >= end). Treated as a data-integrity failure rather
	// than silently producing wrong slots.
	ErrInvalidTimeData = errors.New("availability window has invalid time data")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
)

type AvailabilityUsecase interface {
	GetDaySlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.DoctorAvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.DoctorAvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
	}
}

// minuteInterval is a half-open [start, end) range in minutes since midnight.
type minuteInterval struct {
	start int
	end   int
}

// GetDaySlots computes the bookable slots for a doctor on a calendar date.
//
// The doctor's recurring windows for the date's weekday and the day's
// existing appointments are fetched concurrently; both must complete before
// computation. A slot is available when it lies fully inside one of the
// doctor's windows and no appointment occupies exactly the same interval.
// No windows for that weekday means the doctor is off: an empty list, not an
// error. Stateless and idempotent per call.
func (u *availabilityUsecase) GetDaySlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// 0=Sunday .. 6=Saturday
	dayOfWeek := int(day.Weekday())

	var (
		windows      []entity.DoctorAvailability
		appointments []entity.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := u.availabilityRepo.FindByDoctorAndDay(gctx, u.db, doctorID, dayOfWeek)
		if err != nil {
			return fmt.Errorf("availability windows: %w", err)
		}
		windows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := u.appointmentRepo.FindByDoctorAndDate(gctx, u.db, doctorID, day)
		if err != nil {
			return fmt.Errorf("appointments: %w", err)
		}
		appointments = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load slot data for doctor %s on %s: %+v", doctorID, date, err)
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityLookup, err)
	}

	response := &dto.SlotListResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    []dto.SlotResponse{},
	}

	// No window rows for this weekday: the doctor does not work that day.
	if len(windows) == 0 {
		return response, nil
	}

	// Union of all matching windows. A doctor with split shifts
	// (08:00-12:00 and 14:00-18:00) contributes two intervals.
	open := make([]minuteInterval, 0, len(windows))
	for _, w := range windows {
		start, err := minutesOfDay(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d start %q", ErrInvalidTimeData, w.ID, w.StartTime)
		}
		end, err := minutesOfDay(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d end %q", ErrInvalidTimeData, w.ID, w.EndTime)
		}
		if start >= end {
			return nil, fmt.Errorf("%w: window %d is empty (%s >= %s)", ErrInvalidTimeData, w.ID, w.StartTime, w.EndTime)
		}
		open = append(open, minuteInterval{start: start, end: end})
	}

	// Occupied intervals, matched by exact start AND end. Bookings are always
	// template-aligned (CreateAppointment only accepts catalog slots), so a
	// non-aligned row cannot block a slot. All statuses occupy.
	occupied := make(map[minuteInterval]bool, len(appointments))
	for _, appt := range appointments {
		start, errStart := minutesOfDay(appt.StartTime)
		end, errEnd := minutesOfDay(appt.EndTime)
		if errStart != nil || errEnd != nil {
			// One corrupt booking row must not blank the doctor's whole day.
			u.log.Warnf("Skipping appointment %s with malformed times %q-%q", appt.ID, appt.StartTime, appt.EndTime)
			continue
		}
		occupied[minuteInterval{start: start, end: end}] = true
	}

	for _, slot := range entity.SlotTemplate() {
		slotStart, err := minutesOfDay(slot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: template slot %s", ErrInvalidTimeData, slot.ID)
		}
		slotEnd, err := minutesOfDay(slot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: template slot %s", ErrInvalidTimeData, slot.ID)
		}

		withinWindow := false
		for _, window := range open {
			if slotStart >= window.start && slotEnd <= window.end {
				withinWindow = true
				break
			}
		}

		response.Slots = append(response.Slots, dto.SlotResponse{
			SlotID:    slot.ID,
			Label:     slot.Label(),
			Available: withinWindow && !occupied[minuteInterval{start: slotStart, end: slotEnd}],
		})
	}

	return response, nil
}

// minutesOfDay parses a 24-hour wall-clock string into minutes since
// midnight. Accepts "HH:MM" and "HH:MM:SS" (postgres time columns scan with a
// seconds component).
func minutesOfDay(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("malformed time %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}

	return hours*60 + minutes, nil
}
