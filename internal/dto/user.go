package dto

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=admin manager worker"`
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

// UpdateUserRequest 更新用户请求（空字段不更新）
type UpdateUserRequest struct {
	Name      string `json:"name" binding:"omitempty,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Role      string `json:"role" binding:"omitempty,oneof=admin manager worker"`
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

// UserResponse 用户响应（不含密码哈希）
type UserResponse struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CompanyID   string `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}
