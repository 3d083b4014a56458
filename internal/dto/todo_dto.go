package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateTodoRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateTodoRequest replaces the whole row: an omitted description resets to
// "" and an omitted completed flag resets to false, matching PUT semantics.
type UpdateTodoRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Completed   bool   `json:"completed"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TodoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     string `json:"user_id"`
	// Username is the owner's username, joined in for list views.
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
}

type TodoEnvelope struct {
	Message string       `json:"message"`
	Todo    TodoResponse `json:"todo"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
