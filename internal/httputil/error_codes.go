package httputil

// ErrorCode 統一回應封包的代碼類別，集合固定，新增類別即新增一個常數與一列訊息.
type ErrorCode int

// 回應代碼.
const (
	CodeSuccess    ErrorCode = 0
	CodeAppError   ErrorCode = 1000 // 業務邏輯主動拋出的應用錯誤.
	CodeOtherError ErrorCode = 9999 // 框架、基礎設施等其他錯誤.
)

// 詳細原因的分隔用語.
const detailSeparator = "，详细错误原因："

var codeMessages = map[ErrorCode]string{
	CodeSuccess:    "成功",
	CodeAppError:   "应用错误",
	CodeOtherError: "其他错误",
}

// Code 回傳數值代碼.
func (c ErrorCode) Code() int { return int(c) }

// Message 回傳預設訊息.
func (c ErrorCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return codeMessages[CodeOtherError]
}

// WithDetail 在預設訊息後附加詳細原因.
func (c ErrorCode) WithDetail(detail string) string {
	return c.Message() + detailSeparator + detail
}
