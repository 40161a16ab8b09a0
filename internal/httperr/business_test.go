package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusinessThroughWrapping(t *testing.T) {
	err := fmt.Errorf("confirm: %w", ErrBusinessDetail("slot_not_payable", "booked"))

	assert.True(t, IsBusiness(err, "slot_not_payable"))
	assert.False(t, IsBusiness(err, "slot_not_found"))
	assert.False(t, IsBusiness(errors.New("boom"), "slot_not_payable"))

	be, ok := AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, "booked", be.Detail)
	assert.Equal(t, "slot_not_payable: booked", be.Error())
}
