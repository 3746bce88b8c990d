package dto

import "github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"

// UserDetailCreate is the insert shape for user details. As with
// connections, a client-supplied ID is honoured when present.
type UserDetailCreate struct {
	ID          uint   `json:"id,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
}

func (c UserDetailCreate) Entity() domain.UserDetail {
	u := domain.UserDetail{
		Email:       c.Email,
		DisplayName: c.DisplayName,
		Role:        c.Role,
	}
	u.ID = c.ID
	return u
}

// UserDetailUpdate is the sparse patch shape for user details.
type UserDetailUpdate struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role"`
}

func (u UserDetailUpdate) Changes() map[string]any {
	ch := map[string]any{}
	if u.Email != nil {
		ch["email"] = *u.Email
	}
	if u.DisplayName != nil {
		ch["display_name"] = *u.DisplayName
	}
	if u.Role != nil {
		ch["role"] = *u.Role
	}
	return ch
}

// UserDetailResponse is the output projection for user details.
type UserDetailResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	AuditFields
}

// UserDetailToDTO converts domain.UserDetail to UserDetailResponse.
func UserDetailToDTO(u *domain.UserDetail) UserDetailResponse {
	return UserDetailResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		AuditFields: auditOf(u.CatalogModel),
	}
}
