package httputil

// Response 統一回應封包；成功與失敗都使用同一結構，失敗時 Data 省略.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewResponse 以代碼與訊息建立回應封包.
func NewResponse(code ErrorCode, message string) *Response {
	return &Response{
		Code:    code.Code(),
		Message: message,
	}
}

// Success 建立成功回應封包.
func Success(data interface{}) *Response {
	return &Response{
		Code:    CodeSuccess.Code(),
		Message: CodeSuccess.Message(),
		Data:    data,
	}
}
