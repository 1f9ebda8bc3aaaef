package executor

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/puntoventa/backend/assistant/contract"
	toolx "github.com/puntoventa/backend/assistant/tool"
	"github.com/puntoventa/backend/store"
)

type AppointmentCreated struct {
	Appointment *store.Appointment `json:"appointment"`
}

func (e *Executors) createAppointment(ctx context.Context, tenantID, raw string) contractx.ToolResult {
	args, err := toolx.ParseAppointmentArgs(raw)
	if err != nil {
		return failure(toolx.ToolCreateAppointment, err)
	}

	// The pattern check admits impossible dates like 2025-02-30; time.Parse
	// rejects them here. Parsing "2006-01-02" yields UTC midnight, which keeps
	// the stored date independent of any client timezone.
	date, err := time.Parse("2006-01-02", args.Date)
	if err != nil {
		return failure(toolx.ToolCreateAppointment,
			fmt.Errorf("%w: la fecha %q no existe en el calendario", contractx.ErrValidation, args.Date))
	}

	appointment := &store.Appointment{
		TenantID:      tenantID,
		CustomerName:  args.CustomerName,
		CustomerPhone: args.CustomerPhone,
		Subject:       args.Subject,
		Date:          date,
		Time:          args.Time,
		Status:        store.AppointmentStatusScheduled,
		CreatedAt:     e.now().UTC(),
	}
	if err := e.store.CreateAppointment(ctx, appointment); err != nil {
		return storageFailure(toolx.ToolCreateAppointment, "la cita", tenantID, err)
	}

	return contractx.ToolResult{
		Tool:   toolx.ToolCreateAppointment,
		Result: AppointmentCreated{Appointment: appointment},
	}
}
