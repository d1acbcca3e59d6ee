package converter

// Configure 以 json-iterator 取代預設 JSON 轉換器，並在其後附加文字轉換器.
//
// 預設 JSON 轉換器與先前設定過的替代轉換器都會被移除，結果中恰有一個 JSON 與一個文字轉換器.
// 回傳新清單，不修改傳入的清單.
func Configure(list List, opts Options) (List, error) {
	opts = opts.withDefaults()

	text, err := NewString(opts.Charset)
	if err != nil {
		return nil, err
	}

	configured := list.RemoveIf(func(c Converter) bool {
		switch c.(type) {
		case DefaultJSON, *DefaultJSON, *JSON, *String:
			return true
		}
		return false
	})

	return append(configured, NewJSON(opts), text), nil
}
