package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// BusinessHours opening window of one day
type BusinessHours struct {
	Open   types.TimeString
	Close  types.TimeString
	IsOpen bool
}

// OpenMinutes returns the length of the open window, 0 when closed
func (h BusinessHours) OpenMinutes() int {
	if !h.IsOpen {
		return 0
	}
	d := h.Close.Minutes() - h.Open.Minutes()
	if d < 0 {
		return 0
	}
	return d
}

// Contains reports whether [start, end) fits inside the hours of start's day in loc
func (h BusinessHours) Contains(start, end time.Time, loc *time.Location) bool {
	if !h.IsOpen {
		return false
	}
	local := start.In(loc)
	open := h.Open.On(local, loc)
	closeAt := h.Close.On(local, loc)
	return !start.Before(open) && !end.After(closeAt)
}

// ScheduleConfig represents the schedule settings of the salon.
// Supports hierarchical configuration, most specific wins:
// 1. Staff member on a weekday (staff_id, weekday)
// 2. Staff member, every day (staff_id, NULL)
// 3. Weekday for everyone (NULL, weekday)
// 4. Salon-wide (NULL, NULL)
type ScheduleConfig struct {
	ID                      int64
	StaffID                 *int64        // NULL = config for all staff
	Weekday                 *time.Weekday // NULL = config for every day
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	IsOpen                  bool
	SlotGranularityMinutes  int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// BusinessHours returns the opening window described by the config
func (c *ScheduleConfig) BusinessHours() BusinessHours {
	return BusinessHours{Open: c.OpenTime, Close: c.CloseTime, IsOpen: c.IsOpen}
}

// IsGlobalConfig returns true if this is the salon-wide configuration
func (c *ScheduleConfig) IsGlobalConfig() bool {
	return c.StaffID == nil && c.Weekday == nil
}

// IsStaffSpecific returns true if this configuration is for one staff member on every day
func (c *ScheduleConfig) IsStaffSpecific() bool {
	return c.StaffID != nil && c.Weekday == nil
}

// IsWeekdaySpecific returns true if this configuration is for one weekday for all staff
func (c *ScheduleConfig) IsWeekdaySpecific() bool {
	return c.StaffID == nil && c.Weekday != nil
}

// IsStaffOnWeekday returns true if this configuration is for one staff member on one weekday
func (c *ScheduleConfig) IsStaffOnWeekday() bool {
	return c.StaffID != nil && c.Weekday != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
