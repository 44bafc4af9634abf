// Package whatsapp builds wa.me deep links that hand a placed order over to
// the shop's WhatsApp chat.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fekuna/storefront-service/internal/model"
)

const baseURL = "https://wa.me/"

type LinkBuilder struct {
	phone string
}

// NewLinkBuilder keeps only the digits of phone, the form wa.me expects.
func NewLinkBuilder(phone string) *LinkBuilder {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return &LinkBuilder{phone: digits}
}

// OrderLink returns the chat link for o, or "" when no shop phone is set.
func (b *LinkBuilder) OrderLink(o *model.Order) string {
	if b == nil || b.phone == "" {
		return ""
	}
	text := url.QueryEscape(Message(o))
	return baseURL + b.phone + "?text=" + strings.ReplaceAll(text, "+", "%20")
}

// Message renders the order summary sent to the shop.
func Message(o *model.Order) string {
	var sb strings.Builder
	sb.WriteString("Hola! Quiero hacer un pedido:\n\n")

	for i, item := range o.LineItems {
		if i > 0 {
			sb.WriteByte('\n')
		}
		subtotal := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&sb, "%s x%d - $%s", item.Name, item.Quantity, subtotal.String())
	}

	fmt.Fprintf(&sb, "\n\nTotal: $%s", decimal.NewFromFloat(o.Total).String())
	fmt.Fprintf(&sb, "\n\nNombre: %s\nTeléfono: %s", o.Customer.Name, o.Customer.Phone)
	return sb.String()
}
