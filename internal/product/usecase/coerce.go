package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
)

// applyInput overwrites every mutable field of p from input. absentStock is
// used when the stock value is missing or not a number.
func applyInput(p *model.Product, input *dto.ProductInput, absentStock int, absentActive bool) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return err
	}

	stock, err := parseStock(input.Stock, absentStock)
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = input.Description
	p.Price = price
	p.Images = nonNil(input.Images)
	p.Videos = nonNil(input.Videos)
	p.Category = strings.TrimSpace(input.Category)
	p.Colors = uniqueColors(input.Colors)
	p.Stock = stock
	p.Featured = isTrue(input.Featured)
	p.Active = absentActive
	if input.Active != nil {
		p.Active = isTrue(*input.Active)
	}
	return nil
}

func parsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: price is required", model.ErrInvalidInput)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q is not a number", model.ErrInvalidInput, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: price must not be negative", model.ErrInvalidInput)
	}
	price := d.InexactFloat64()
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, fmt.Errorf("%w: price %q is out of range", model.ErrInvalidInput, raw)
	}
	return price, nil
}

var maxStock = decimal.NewFromInt(math.MaxInt32)

// parseStock truncates fractional values toward zero. Stock is stored as a
// 32-bit integer column, so larger values are rejected.
func parseStock(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback, nil
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: stock must not be negative", model.ErrInvalidInput)
	}
	if d.GreaterThan(maxStock) {
		return 0, fmt.Errorf("%w: stock %q is out of range", model.ErrInvalidInput, raw)
	}
	return int(d.IntPart()), nil
}

func isTrue(raw string) bool {
	return raw == "true"
}

func uniqueColors(colors []string) model.StringList {
	out := make(model.StringList, 0, len(colors))
	seen := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func nonNil(list []string) model.StringList {
	if list == nil {
		return model.StringList{}
	}
	return model.StringList(list)
}
