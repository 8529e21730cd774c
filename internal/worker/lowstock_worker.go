package worker

// lowstock_worker.go
// Processes low-stock check jobs enqueued after each committed sale.
// When any of the sold variants fell to or below its stock_min threshold,
// one alert email summarizing them is sent to the configured address.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LisandroRios/GestionDeVentas/internal/infra"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type LowStockWorker struct {
	variantRepo repository.VariantRepository
	mailer      *infra.Mailer
	alertEmail  string
}

func NewLowStockWorker(variantRepo repository.VariantRepository, mailer *infra.Mailer, alertEmail string) *LowStockWorker {
	return &LowStockWorker{variantRepo: variantRepo, mailer: mailer, alertEmail: alertEmail}
}

// Process re-reads each variant and mails a single alert for those at or
// below their threshold. Failures are logged and dropped — the sale that
// triggered the check is already committed and must not be affected.
func (w *LowStockWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload LowStockJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("lowstock_worker: invalid payload")
		return
	}
	if w.alertEmail == "" {
		return
	}

	var lines []string
	for _, rawID := range payload.VariantIDs {
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		v, err := w.variantRepo.FindByID(ctx, id)
		if err != nil {
			log.Warn().Str("variant_id", rawID).Err(err).Msg("lowstock_worker: variant lookup failed")
			continue
		}
		if v.StockMin != nil && v.Stock <= *v.StockMin {
			lines = append(lines, fmt.Sprintf("- %s: stock %d (min %d)", v.VariantName, v.Stock, *v.StockMin))
		}
	}
	if len(lines) == 0 {
		return
	}

	body := fmt.Sprintf("After sale %s the following variants are at or below their minimum stock:\n\n%s\n",
		payload.SaleID, strings.Join(lines, "\n"))
	if err := w.mailer.SendAlert(w.alertEmail, "Low stock alert", body); err != nil {
		log.Error().Err(err).Str("to", w.alertEmail).Msg("lowstock_worker: failed to send alert")
		return
	}
	log.Info().Int("variants", len(lines)).Msg("lowstock_worker: alert sent")
}
