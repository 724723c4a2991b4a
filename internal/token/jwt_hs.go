package token

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/23121005-sketch/D-arlet/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims es la sesión decodificada de un token de acceso válido.
type Claims struct {
	EmpleadoID uuid.UUID
	Rol        models.Rol
	Nombre     string
	Exp        time.Time
}

type HSProvider struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewHSProvider(secret, issuer, audience string, ttl time.Duration) *HSProvider {
	return &HSProvider{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

type customClaims struct {
	Rol    string `json:"rol"`
	Nombre string `json:"nombre"`
	jwt.RegisteredClaims
}

func (p *HSProvider) SignAccess(id uuid.UUID, rol models.Rol, nombre string) (string, time.Time, error) {
	now := p.now()
	exp := now.Add(p.ttl)

	claims := customClaims{
		Rol:    string(rol),
		Nombre: nombre,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   id.String(),
			Audience:  []string{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(p.secret)
	return signed, exp, err
}

func (p *HSProvider) ParseAndValidate(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &customClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithAudience(p.audience), jwt.WithIssuer(p.issuer))
	if err != nil {
		return nil, err
	}
	cc, ok := parsed.Claims.(*customClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	id, err := uuid.Parse(cc.Subject)
	if err != nil {
		return nil, err
	}
	return &Claims{
		EmpleadoID: id,
		Rol:        models.Rol(cc.Rol),
		Nombre:     cc.Nombre,
		Exp:        cc.ExpiresAt.Time,
	}, nil
}

// Fingerprint resume el token crudo para usarlo como clave corta en la lista
// negra de redis.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
