package model

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fish sticks", "Fish Sticks"},
		{"  milk  ", "Milk"},
		{"PRODUCE", "Produce"},
		{"paper goods", "Paper Goods"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), "TitleCase(%q)", tt.in)
	}
}

func TestShopListDefaultTitle(t *testing.T) {
	list := ShopList{ID: 42}
	assert.Equal(t, fmt.Sprintf("%s42", TitlePrefix), list.DefaultTitle())
}

func TestShopListComputeTotal(t *testing.T) {
	list := ShopList{
		Items: []Item{
			{Price: decimal.RequireFromString("4.25")},
			{Price: decimal.RequireFromString("3.00")},
		},
	}
	list.ComputeTotal()
	assert.True(t, list.Total.Equal(decimal.RequireFromString("7.25")))

	list.Items = nil
	list.ComputeTotal()
	assert.True(t, list.Total.IsZero())
}
