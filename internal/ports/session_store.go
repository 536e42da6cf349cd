package ports

import "github.com/Gunvolt24/wb_shop/internal/domain"

// SessionStore — конкурентное хранилище сессий по токену.
// Требования к реализации: потокобезопасность без общего мьютекса на всю структуру;
// ленивое удаление истёкших записей при доступе; идемпотентное удаление.
type SessionStore interface {
	// Issue — выдать новый уникальный токен на userID/username.
	Issue(userID int64, username string) string

	// IsValid — false для пустого/неизвестного/истёкшего токена.
	// Истёкшая запись при проверке удаляется.
	IsValid(token string) bool

	// Get — полная запись сессии; (Session{}, false) при промахе или истечении.
	Get(token string) (domain.Session, bool)
}
