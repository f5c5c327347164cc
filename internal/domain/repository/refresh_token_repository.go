package repository

import "github.com/teasoo/esg-platform-api/internal/domain/entity"

// RefreshTokenRepository define el puerto de persistencia para RefreshToken (DIP).
type RefreshTokenRepository interface {
	Create(token *entity.RefreshToken) error
	GetByToken(token string) (*entity.RefreshToken, error)
}
