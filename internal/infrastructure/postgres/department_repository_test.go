package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// El listado por company hace LEFT JOIN contra users para el resumen del
// líder. Como lead_user_id es texto y users.id es uuid, el join debe castear
// explícitamente; Postgres no tiene cast implícito entre uuid y text y sin él
// toda la consulta falla con 42883.
func TestListByCompanyQuery_CasteaUUIDAText(t *testing.T) {
	assert.Contains(t, listByCompanyQuery, "u.id::text = d.lead_user_id",
		"el join del líder debe castear users.id a text")
	assert.NotContains(t, listByCompanyQuery, "u.id = d.lead_user_id",
		"comparar uuid contra text sin cast rompe la consulta")
}
