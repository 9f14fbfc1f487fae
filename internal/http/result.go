package httpapi

// Result 统一响应信封
// - code: 2000 成功，-1 失败
// - type: 'success' | 'error' | 'warning'（warning = 输入问题，前端提示后可重试）
// - message: string
// - result: any
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// Warn 校验失败；result 携带出错字段
func Warn(message string, result any) Result[any] {
	return Result[any]{Code: ResultError, Type: "warning", Message: message, Result: result}
}
