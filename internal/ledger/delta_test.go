package ledger

import (
	"sync"
	"testing"

	"zaiko-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDelta(t *testing.T) {
	tests := []struct {
		name         string
		kind         models.TransactionType
		quantity     int
		currentStock int
		wantDelta    int
		wantErr      error
	}{
		{"入荷は加算", models.TransactionInbound, 5, 0, 5, nil},
		{"返品は加算", models.TransactionReturn, 3, 10, 3, nil},
		{"調整は加算", models.TransactionAdjust, 7, 10, 7, nil},
		{"出荷は減算", models.TransactionOutbound, 4, 10, -4, nil},
		{"在庫ちょうどの出荷は成功", models.TransactionOutbound, 10, 10, -10, nil},
		{"在庫を超える出荷は失敗", models.TransactionOutbound, 11, 10, 0, ErrInsufficientStock},
		{"在庫ゼロへの出荷は失敗", models.TransactionOutbound, 1, 0, 0, ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := ResolveDelta(tt.kind, tt.quantity, tt.currentStock)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDelta, delta)
		})
	}
}

func TestResolveDelta_UnknownType(t *testing.T) {
	_, err := ResolveDelta(models.TransactionType("廃棄"), 1, 10)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientStock)
}

// 一連の取引を適用した後の在庫 = 開始在庫 + 各取引の符号付き増減の合計
func TestResolveDelta_SequenceSumsToCounter(t *testing.T) {
	ops := []struct {
		kind     models.TransactionType
		quantity int
	}{
		{models.TransactionInbound, 100},
		{models.TransactionOutbound, 30},
		{models.TransactionReturn, 5},
		{models.TransactionAdjust, 10},
		{models.TransactionOutbound, 85},
	}

	stock := 0
	sum := 0
	for _, op := range ops {
		delta, err := ResolveDelta(op.kind, op.quantity, stock)
		require.NoError(t, err)
		stock += delta
		sum += delta
		assert.Equal(t, sum, stock)
	}
	assert.Equal(t, 0, stock) // 100 - 30 + 5 + 10 - 85
}

// 失敗した出荷は在庫を変えない
func TestResolveDelta_FailedOutboundLeavesStockUnchanged(t *testing.T) {
	stock := 10
	_, err := ResolveDelta(models.TransactionOutbound, 11, stock)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10, stock)
}

// ストア側の原子的な加算を模したカウンタ。
// ハンドラが発行する「current_stock = current_stock + ?（出荷は >= 条件付き）」
// と同じ読み書き規則で適用する。
type stockCounter struct {
	mu    sync.Mutex
	stock int
}

func (s *stockCounter) apply(kind models.TransactionType, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delta, err := ResolveDelta(kind, quantity, s.stock)
	if err != nil {
		return err
	}
	s.stock += delta
	return nil
}

// 同一商品への並行追記で更新が失われないこと（lost update なし）
func TestConcurrentAppends_NoLostUpdates(t *testing.T) {
	counter := &stockCounter{stock: 1000}

	const workers = 50
	const perWorker = 20

	var wg sync.WaitGroup
	var succeededOut, succeededIn int64
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		kind := models.TransactionOutbound
		if i%2 == 0 {
			kind = models.TransactionInbound
		}
		wg.Add(1)
		go func(kind models.TransactionType) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if err := counter.apply(kind, 1); err == nil {
					mu.Lock()
					if kind == models.TransactionOutbound {
						succeededOut++
					} else {
						succeededIn++
					}
					mu.Unlock()
				}
			}
		}(kind)
	}
	wg.Wait()

	// 在庫 = 開始在庫 + 成功した入荷 - 成功した出荷
	assert.Equal(t, 1000+succeededIn-succeededOut, int64(counter.stock))
	assert.GreaterOrEqual(t, counter.stock, 0)
}
