package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatusOf(t *testing.T) {
	tests := []struct {
		name    string
		current int
		min     int
		max     int
		want    StockStatus
	}{
		{"在庫ゼロは在庫切れ", 0, 10, 1000, StockStatusOut},
		{"最小在庫ちょうどは在庫少", 10, 10, 1000, StockStatusLow},
		{"最小在庫未満は在庫少", 5, 10, 1000, StockStatusLow},
		{"1個でも在庫少", 1, 10, 1000, StockStatusLow},
		{"最大在庫ちょうどは在庫過多", 1000, 10, 1000, StockStatusOver},
		{"最大在庫超は在庫過多", 1500, 10, 1000, StockStatusOver},
		{"閾値の間は正常", 11, 10, 1000, StockStatusNormal},
		{"最大在庫の直前は正常", 999, 10, 1000, StockStatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockStatusOf(tt.current, tt.min, tt.max))
		})
	}
}

func TestProduct_StockStatus(t *testing.T) {
	p := Product{CurrentStock: 0, MinStockLevel: 10, MaxStockLevel: 1000}
	assert.Equal(t, StockStatusOut, p.StockStatus())

	p.CurrentStock = 500
	assert.Equal(t, StockStatusNormal, p.StockStatus())
}

func TestTransactionType_Valid(t *testing.T) {
	for _, kind := range []TransactionType{TransactionInbound, TransactionOutbound, TransactionAdjust, TransactionReturn} {
		assert.True(t, kind.Valid(), string(kind))
	}
	assert.False(t, TransactionType("").Valid())
	assert.False(t, TransactionType("廃棄").Valid())
}
