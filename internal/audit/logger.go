package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

type Writer interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
}

type Logger struct {
	store Writer
}

func New(store Writer) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		Actor:    ev.Actor,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.store.CreateAuditLog(ctx, &row)
}

// ---------- actor no contexto ----------

type actorKey struct{}

// WithActor guarda o login autenticado para os eventos da requisição.
func WithActor(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, actorKey{}, login)
}

func ActorFrom(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok {
		return v
	}
	return "anonymous"
}
