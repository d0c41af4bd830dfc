package jobs

import (
	"context"
	"fmt"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/utils"
)

// CompleteFinishedStays moves checked-in stays whose check-out date has
// passed to checked_out
func (jr *JobRunner) CompleteFinishedStays() {
	jr.runWithRecovery("CompleteFinishedStays", func() {
		log := logger.WithMethod("JobRunner.CompleteFinishedStays")
		ctx := context.Background()
		today := utils.Today(jr.now(), jr.config.Location())

		ids, err := jr.reservations.CompleteFinishedStays(ctx, today)
		if err != nil {
			log.Error("Failed to complete finished stays", "error", err)
			return
		}

		log.Info("Completed finished stays", "count", len(ids), "today", today.String())

		for _, id := range ids {
			payload := map[string]string{"id": id, "status": string(domain.ReservationStatusCheckedOut)}
			if err := jr.publisher.Publish(ctx, events.ReservationStatusChanged, id, "", payload); err != nil {
				log.Warn("Failed to publish status change", "reservation_id", id, "error", err)
			}
		}
	})
}

// SendDailyDigest emails the staff the day's alerts and pushes a short summary
func (jr *JobRunner) SendDailyDigest() {
	jr.runWithRecovery("SendDailyDigest", func() {
		log := logger.WithMethod("JobRunner.SendDailyDigest")
		ctx := context.Background()
		to := jr.config.Business.StaffEmail
		if to == "" {
			log.Warn("No staff email configured, skipping daily digest")
			return
		}

		alerts, err := jr.services.Alerts.GetAlerts(ctx)
		if err != nil {
			log.Error("Failed to load alerts for digest", "error", err)
			return
		}
		if alerts.Empty() {
			log.Info("Nothing to report in daily digest", "today", alerts.Today.String())
			return
		}

		if err := jr.services.Email.SendDailyDigest(ctx, to, alerts); err != nil {
			log.Error("Failed to send daily digest", "to", to, "error", err)
		}

		body := fmt.Sprintf("%d check-ins, %d check-outs, %d pending balances, %d unread messages",
			len(alerts.UpcomingCheckIns), len(alerts.UpcomingCheckOuts), len(alerts.PendingBalances), len(alerts.UnreadMessages))
		if err := jr.services.Push.NotifyStaff(ctx, "Daily summary", body, map[string]string{"date": alerts.Today.String()}); err != nil {
			log.Warn("Failed to push daily summary", "error", err)
		}
	})
}
