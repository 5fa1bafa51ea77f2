package coordination

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be formatted YYYY-MM-DD")

// StandardTicks is the fixed half-hour grid every schedule view enumerates.
var StandardTicks = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30",
}

// WeekStart returns the Monday of the week containing t. For a Sunday that
// is six days prior.
func WeekStart(t time.Time) time.Time {
	diff := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -diff)
}

// WeekDates returns the seven dates of the Monday-start week containing ref.
func WeekDates(ref string) ([]string, error) {
	t, err := time.Parse(dateLayout, ref)
	if err != nil {
		return nil, ErrInvalidDate
	}

	monday := WeekStart(t)
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = monday.AddDate(0, 0, i).Format(dateLayout)
	}
	return dates, nil
}

// DayView is the schedule for a single date: one cell per standard tick,
// with open placeholders synthesized for unbooked ticks.
type DayView struct {
	Date  string        `json:"date"`
	Cells []Appointment `json:"cells"`
}

// WeekView is the seven-day grid for the week containing the reference
// date. Unbooked cells get the same synthesized open placeholder as the
// daily view; the two views share one absent-cell policy.
type WeekView struct {
	WeekDates []string  `json:"week_dates"`
	Rows      []WeekRow `json:"rows"`
}

type WeekRow struct {
	Time  string        `json:"time"`
	Cells []Appointment `json:"cells"`
}

func openPlaceholder(date, tick string) Appointment {
	return Appointment{Date: date, Time: tick, Status: AppointmentOpen}
}

func dailySchedule(st *SessionState, date string) (DayView, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return DayView{}, ErrInvalidDate
	}

	view := DayView{Date: date, Cells: make([]Appointment, 0, len(StandardTicks))}
	for _, tick := range StandardTicks {
		if appt := st.AppointmentAt(date, tick); appt != nil {
			view.Cells = append(view.Cells, *appt)
			continue
		}
		view.Cells = append(view.Cells, openPlaceholder(date, tick))
	}
	return view, nil
}

func weeklySchedule(st *SessionState, ref string) (WeekView, error) {
	dates, err := WeekDates(ref)
	if err != nil {
		return WeekView{}, err
	}

	view := WeekView{WeekDates: dates, Rows: make([]WeekRow, 0, len(StandardTicks))}
	for _, tick := range StandardTicks {
		row := WeekRow{Time: tick, Cells: make([]Appointment, 0, 7)}
		for _, date := range dates {
			if appt := st.AppointmentAt(date, tick); appt != nil {
				row.Cells = append(row.Cells, *appt)
				continue
			}
			row.Cells = append(row.Cells, openPlaceholder(date, tick))
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}
