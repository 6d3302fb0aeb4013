package dto

// CreateClientRequest 创建客户请求
// PRIVATO 客户填姓名，AZIENDA 客户填企业名称
type CreateClientRequest struct {
	Code         string `json:"code" binding:"required,max=50"`
	Type         string `json:"type" binding:"required,oneof=PRIVATO AZIENDA"`
	FirstName    string `json:"first_name" binding:"omitempty,max=100"`
	LastName     string `json:"last_name" binding:"omitempty,max=100"`
	BusinessName string `json:"business_name" binding:"omitempty,max=200"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"omitempty,max=30"`
}

// UpdateClientRequest 更新客户请求
type UpdateClientRequest struct {
	Type         string `json:"type" binding:"omitempty,oneof=PRIVATO AZIENDA"`
	FirstName    string `json:"first_name" binding:"omitempty,max=100"`
	LastName     string `json:"last_name" binding:"omitempty,max=100"`
	BusinessName string `json:"business_name" binding:"omitempty,max=200"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"omitempty,max=30"`
}

// ClientResponse 客户响应，DisplayName 按客户类型推导
type ClientResponse struct {
	ClientID     string `json:"client_id"`
	Code         string `json:"code"`
	Type         string `json:"type"`
	DisplayName  string `json:"display_name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CreatedAt    string `json:"created_at"`
}
