package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Phillippus/PickaThon/internal/config"
	"github.com/Phillippus/PickaThon/pkg/clients/sheetsclient"
	"github.com/Phillippus/PickaThon/pkg/db"
)

// SchedulePublisher is the sheets operation needed to publish a schedule
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, schedule *sheetsclient.PublishedSchedule) error
}

// PublishSchedule writes the latest finalized schedule of a month to the
// configured Google Sheets spreadsheet, one tab per month. Unfilled days
// are published as "None" so the gaps stay visible.
func PublishSchedule(
	ctx context.Context,
	database db.Database,
	publisher SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	month, year int,
) error {
	if cfg.ScheduleSheetID == "" {
		return fmt.Errorf("scheduleSheetID is not configured")
	}

	view, err := ViewSchedule(ctx, database, cfg, logger, month, year)
	if err != nil {
		return err
	}

	published := &sheetsclient.PublishedSchedule{
		Month: month,
		Year:  year,
		Rows:  make([]sheetsclient.PublishedScheduleRow, len(view.Rows)),
	}

	for i, row := range view.Rows {
		doctor := row.Doctor
		if doctor == "" {
			doctor = "None"
		}
		published.Rows[i] = sheetsclient.PublishedScheduleRow{
			Date:             row.Date,
			Doctor:           doctor,
			WeekendOrHoliday: row.WeekendOrHoliday,
		}
	}

	if err := publisher.PublishSchedule(cfg.ScheduleSheetID, published); err != nil {
		return fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published",
		zap.String("run_id", view.RunID),
		zap.String("spreadsheet_id", cfg.ScheduleSheetID),
		zap.Int("month", month),
		zap.Int("year", year))

	return nil
}
