package export

import (
	"bytes"
	"encoding/csv"
)

// BuildCSV: ヘッダー行 + データ行を BOM 付き UTF-8 の CSV にする。
// カンマ・改行・ダブルクォートを含む値は encoding/csv が
// クォートで囲み、クォートは二重化してエスケープする。
func BuildCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
