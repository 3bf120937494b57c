package extract_test

import (
	"testing"

	"github.com/fwojciec/encarte/extract"
	"github.com/stretchr/testify/assert"
)

func TestIsProductLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"Arroz Tio João 5kg R$ 23,99", true},
		{"Leite Integral", true},
		{"  Feijão Carioca  ", true},
		{"12.345,00", false},
		{"Validade até 20/05", false},
		{"OFERTAS DA SEMANA", false},
		{"Supermercado Bom Preço", false},
		{"Página 2", false},
		{"Leve 3 Pague 2", true},
		{"Leve% pague%", false},
		{"Preço por kg", false},
		{"Ab", false},
		{"   ", false},
		{"123", false},
		{"!!! ???", false},
		{"Pão Francês", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.IsProductLine(tt.line))
		})
	}
}

func TestIsPromotionLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"Leve 3 Pague 2", true},
		{"IMPERDÍVEL Cerveja R$ 2,99", true},
		{"Super Oferta", true},
		{"Desconto de 10%", true},
		{"Leite Integral R$ 4,59", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.IsPromotionLine(tt.line))
		})
	}
}
