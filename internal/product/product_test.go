package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatProductID(t *testing.T) {
	assert.Equal(t, "P000001", FormatProductID(1))
	assert.Equal(t, "P000123", FormatProductID(123))
	assert.Equal(t, "P999999", FormatProductID(999999))
	assert.Equal(t, "P1000000", FormatProductID(1000000)) // 6桁を超えたら桁が伸びる
}

func TestShouldSoftDelete(t *testing.T) {
	// 取引履歴がない商品だけ物理削除できる
	assert.False(t, ShouldSoftDelete(0))
	assert.True(t, ShouldSoftDelete(1))
	assert.True(t, ShouldSoftDelete(42))
}
