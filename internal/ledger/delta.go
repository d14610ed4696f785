package ledger

import (
	"errors"
	"fmt"

	"zaiko-backend/internal/models"
)

var ErrInsufficientStock = errors.New("在庫が不足しています")

// ResolveDelta: 取引種別と数量から在庫カウンタへの符号付き増減を決める。
// 入荷・返品は +quantity、出荷は -quantity（現在庫を超える出荷は ErrInsufficientStock）。
// 調整も +quantity として扱う。符号付き補正に変更する場合はこの switch だけ直す。
func ResolveDelta(kind models.TransactionType, quantity, currentStock int) (int, error) {
	switch kind {
	case models.TransactionInbound, models.TransactionReturn, models.TransactionAdjust:
		return quantity, nil
	case models.TransactionOutbound:
		if currentStock < quantity {
			return 0, ErrInsufficientStock
		}
		return -quantity, nil
	}
	return 0, fmt.Errorf("不正な取引種別: %s", kind)
}
