package ports

import "github.com/taskboard/api/internal/core/domain"

// UserNotifier receives best-effort events outside the request/response
// path. Implementations must not block the caller.
type UserNotifier interface {
	UserCreated(user domain.PublicUser)
}
