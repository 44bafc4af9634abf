package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	for _, s := range []OrderStatus{"", "cancelled", "PENDING", "shipped "} {
		assert.False(t, s.Valid(), string(s))
	}
}
