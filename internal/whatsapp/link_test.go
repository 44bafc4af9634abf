package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/internal/model"
)

func testOrder() *model.Order {
	return &model.Order{
		Customer: model.Customer{Name: "Ana", Phone: "555-1234"},
		LineItems: model.LineItems{
			{Name: "Bag", Price: 19.99, Quantity: 2},
			{Name: "Hat", Price: 5, Quantity: 1},
		},
		Total: 44.98,
	}
}

func TestMessage(t *testing.T) {
	want := "Hola! Quiero hacer un pedido:\n\n" +
		"Bag x2 - $39.98\n" +
		"Hat x1 - $5\n\n" +
		"Total: $44.98\n\n" +
		"Nombre: Ana\nTeléfono: 555-1234"
	assert.Equal(t, want, Message(testOrder()))
}

func TestOrderLink(t *testing.T) {
	b := NewLinkBuilder("+54 9 1234-567890")
	link := b.OrderLink(testOrder())

	require.True(t, strings.HasPrefix(link, "https://wa.me/5491234567890?text="))
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, Message(testOrder()), u.Query().Get("text"))
}

func TestOrderLinkWithoutPhone(t *testing.T) {
	assert.Empty(t, NewLinkBuilder("").OrderLink(testOrder()))

	var b *LinkBuilder
	assert.Empty(t, b.OrderLink(testOrder()))
}
