package request

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Role string `json:"role" binding:"required"`
}

// UserFilterRequest represents user filter parameters
type UserFilterRequest struct {
	Search    string `form:"search"`
	Role      string `form:"role"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ReportFilterRequest represents report date range parameters, as
// YYYY-MM-DD dates. End is inclusive.
type ReportFilterRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}
