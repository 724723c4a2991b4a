package service

import (
	"context"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/google/uuid"
)

// EmailSender envía correos transaccionales. La implementación real vive en
// internal/notifier; los tests usan un fake.
type EmailSender interface {
	Send(ctx context.Context, to, nombre, asunto, cuerpo string, meta map[string]string) error
}

// EventBus publica cambios de colección para los paneles en vivo. Publicar es
// best-effort: un fallo se loguea y no revierte la operación de negocio.
type EventBus interface {
	PublishCambio(ctx context.Context, tabla, accion, registroID string) error
}

// TokenProvider firma los tokens de sesión del personal.
type TokenProvider interface {
	SignAccess(id uuid.UUID, rol models.Rol, nombre string) (string, time.Time, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// SessionCache cubre el rate limit de login y la lista negra de tokens.
// La lista negra trabaja con la huella del token (token.Fingerprint), nunca
// con el JWT crudo. Cuando redis está apagado la implementación es un no-op
// permisivo.
type SessionCache interface {
	CheckRateLimit(ctx context.Context, key string) (bool, error)
	SetRateLimit(ctx context.Context, key string, ttl time.Duration) error
	BlacklistToken(ctx context.Context, fingerprint string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, fingerprint string) (bool, error)
}
