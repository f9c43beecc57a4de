package constants

const (
	//分頁
	DefaultPagingSize int = 10
	DefaultPaging     int = 1
	MaxPagingSize     int = 100
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	// CurrentUserKey 身分中介層解析出的使用者
	CurrentUserKey ContextKey = "current_user"
)

// IdentityHeader 上游閘道驗證後帶進來的使用者識別
const IdentityHeader = "X-User-ID"
