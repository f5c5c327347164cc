package entity

import "time"

// RefreshToken credencial opaca ligada a un usuario. Se crea al hacer login
// y se lee al refrescar; no hay lista de revocación.
type RefreshToken struct {
	ID        string
	Token     string // opaco, único
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
