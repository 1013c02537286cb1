package controllers

import (
	"encoding/json"
	"strings"

	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/ctx"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/sidestore"
)

// TimelineController serves the durable order timeline: the view of a
// user's orders read from the side-store rather than the in-process
// ledger, so it survives restarts. Authenticated by external token +
// matching email in the query string (the storefront's tracking page
// links here without a session).
type TimelineController struct {
	side *sidestore.Store
}

func NewTimelineController(side *sidestore.Store) *TimelineController {
	return &TimelineController{side: side}
}

type timelineEntry struct {
	OrderID  string                   `json:"orderId"`
	Status   string                   `json:"status"`
	Total    float64                  `json:"total"`
	Currency string                   `json:"currency"`
	History  []map[string]interface{} `json:"history"`
}

// Show lists the caller's durable orders with their event trails.
func (c *TimelineController) Show(cc *ctx.Context) {
	email := strings.ToLower(strings.TrimSpace(cc.Query("email")))
	token := cc.Query("token")
	if email == "" || token == "" {
		cc.ValidationError(map[string]string{
			"email": "Necesitamos un email válido",
			"token": "Necesitamos el token de acceso",
		})
		return
	}

	external, err := c.side.UserByAccessToken(cc.Context(), token)
	if err != nil {
		cc.Err(err)
		return
	}
	if store.NormalizeEmail(external.Email) != email {
		cc.Err(httperr.Forbidden("El email no coincide con el token proporcionado"))
		return
	}

	rows, err := c.side.OrdersByUser(external.ID)
	if err != nil {
		cc.Err(err)
		return
	}

	items := make([]timelineEntry, 0, len(rows))
	for _, row := range rows {
		entry := timelineEntry{
			OrderID:  row.ID,
			Status:   row.Status,
			Total:    row.Total,
			Currency: row.Currency,
			History:  []map[string]interface{}{},
		}

		events, err := c.side.EventsByOrder(row.ID)
		if err == nil {
			for _, ev := range events {
				var checkpoint map[string]interface{}
				_ = json.Unmarshal([]byte(ev.Checkpoint), &checkpoint)
				entry.History = append(entry.History, map[string]interface{}{
					"status":     ev.Status,
					"note":       ev.Note,
					"at":         ev.HappenedAt,
					"checkpoint": checkpoint,
				})
			}
		}

		items = append(items, entry)
	}

	cc.Success(map[string]interface{}{
		"user":  map[string]string{"id": external.ID, "email": external.Email},
		"total": len(items),
		"items": items,
	})
}
