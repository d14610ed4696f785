package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSV_BOMAndHeader(t *testing.T) {
	body, err := BuildCSV([]string{"商品ID", "商品名"}, [][]string{{"P000001", "テスト商品"}})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(body, []byte("\uFEFF")))

	lines := strings.Split(strings.TrimRight(string(body[3:]), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "商品ID,商品名", lines[0])
	assert.Equal(t, "P000001,テスト商品", lines[1])
}

func TestBuildCSV_Escaping(t *testing.T) {
	rows := [][]string{
		{"カンマ,入り", "normal"},
		{`ダブル"クォート`, "x"},
		{"改行\n入り", "y"},
	}
	body, err := BuildCSV([]string{"a", "b"}, rows)
	require.NoError(t, err)

	s := string(body[3:]) // BOM を除く
	assert.Contains(t, s, `"カンマ,入り"`)
	assert.Contains(t, s, `"ダブル""クォート"`)
	assert.Contains(t, s, "\"改行\n入り\"")
}

// CSV に書いた値が読み戻して元の値と一致する（往復変換）
func TestBuildCSV_RoundTrip(t *testing.T) {
	headers := []string{"取引日", "商品名", "備考"}
	rows := [][]string{
		{"2025-01-15", "ノートPC A4,上位モデル", "急ぎ"},
		{"2025-01-16", `15" モニター`, "備考なし"},
		{"2025-01-17", "ケーブル", "複数行の\nメモ"},
		{"2025-01-18", "", ""},
	}

	body, err := BuildCSV(headers, rows)
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, []byte("\uFEFF"))))
	parsed, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, parsed, len(rows)+1)
	assert.Equal(t, headers, parsed[0])
	for i, row := range rows {
		assert.Equal(t, row, parsed[i+1])
	}
}
