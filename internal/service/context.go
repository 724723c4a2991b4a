package service

import (
	"context"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
)

// Actor es la sesión autenticada que ejecuta la operación. Se pasa siempre
// por contexto; la lógica de negocio nunca lee estado global.
type Actor struct {
	ID     uuid.UUID
	Rol    models.Rol
	Nombre string
}

type ctxKey string

const ctxActorKey ctxKey = "actor"

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxActorKey, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxActorKey).(Actor)
	return a, ok
}

func requireActor(ctx context.Context) (Actor, error) {
	a, ok := ActorFromContext(ctx)
	if !ok {
		return Actor{}, ErrUnauthorized
	}
	return a, nil
}
