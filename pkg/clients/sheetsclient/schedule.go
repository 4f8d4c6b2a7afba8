package sheetsclient

import (
	"fmt"
)

// PublishedScheduleRow represents one day of the published schedule
type PublishedScheduleRow struct {
	Date             string // Format: "2006-01-02"
	Doctor           string // "None" for unfilled days
	WeekendOrHoliday bool
}

// PublishedSchedule represents the complete published month
type PublishedSchedule struct {
	Month int
	Year  int
	Rows  []PublishedScheduleRow
}

// PublishSchedule writes a month's night-shift schedule to a tab named
// "YYYY-MM". The tab is created if missing and overwritten otherwise, so
// re-finalizing a month republishes cleanly.
func (c *Client) PublishSchedule(spreadsheetID string, schedule *PublishedSchedule) error {
	tabTitle := fmt.Sprintf("%04d-%02d", schedule.Year, schedule.Month)

	exists, err := c.SheetExists(spreadsheetID, tabTitle)
	if err != nil {
		return fmt.Errorf("failed to check for tab %s: %w", tabTitle, err)
	}

	if !exists {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab %s: %w", tabTitle, err)
		}
	}

	values := make([][]interface{}, 0, len(schedule.Rows)+1)
	values = append(values, []interface{}{"Date", "Doctor", "Weekend/Holiday"})

	for _, row := range schedule.Rows {
		flag := ""
		if row.WeekendOrHoliday {
			flag = "*"
		}
		values = append(values, []interface{}{row.Date, row.Doctor, flag})
	}

	writeRange := fmt.Sprintf("%s!A1:C%d", tabTitle, len(values))
	if err := c.UpdateValues(spreadsheetID, writeRange, values); err != nil {
		return fmt.Errorf("failed to write schedule to tab %s: %w", tabTitle, err)
	}

	return nil
}
