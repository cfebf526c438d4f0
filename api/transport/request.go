package transport

type ProfileUpdateRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type TaskCreateRequest struct {
	ProjectID      string `json:"project_id"`
	Description    string `json:"description"`
	AssigneeID     string `json:"assignee_id"`
	Status         string `json:"status"`
	ExpectedFinish string `json:"expected_finish"`
}

type TaskStatusRequest struct {
	Status string `json:"status"`
}

type TaskAssigneeRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

type ExpectedFinishRequest struct {
	ExpectedFinish *string `json:"expected_finish"`
}

type ReplyRequest struct {
	Message   string `json:"message"`
	NewStatus string `json:"new_status"`
}

type MemberRoleRequest struct {
	Role string `json:"role"`
}

type MemberActiveRequest struct {
	Active bool `json:"active"`
}

type WorkLogSubmitRequest struct {
	ProjectID string `json:"project_id"`
	LogDate   string `json:"log_date"`
	Content   string `json:"content"`
}

type WorkLogEditRequest struct {
	Content string `json:"content"`
}

type WorkLogReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}
