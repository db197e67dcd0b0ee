package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davidmparra/libreria-api/internal/domain/entity"
)

func TestIsValidMovementType(t *testing.T) {
	for _, tipo := range []string{
		entity.MovementTypeARRIVAL,
		entity.MovementTypeSALE,
		entity.MovementTypeLOSS,
		entity.MovementTypeTHEFT,
	} {
		assert.True(t, entity.IsValidMovementType(tipo), "tipo %s debe ser válido", tipo)
	}
	for _, tipo := range []string{"", "arrival", "RETURN", "TRANSFER", " SALE"} {
		assert.False(t, entity.IsValidMovementType(tipo), "tipo %q debe rechazarse", tipo)
	}
}

func TestMovementEffect_SignoPorTipo(t *testing.T) {
	// Solo ARRIVAL suma; venta, pérdida y robo restan.
	assert.Equal(t, int64(5), entity.MovementEffect(entity.MovementTypeARRIVAL, 5))
	assert.Equal(t, int64(-5), entity.MovementEffect(entity.MovementTypeSALE, 5))
	assert.Equal(t, int64(-5), entity.MovementEffect(entity.MovementTypeLOSS, 5))
	assert.Equal(t, int64(-5), entity.MovementEffect(entity.MovementTypeTHEFT, 5))
}
