package dto

// TaskRequest is the body of POST /tasks and POST /addtasks.
type TaskRequest struct {
	TaskName      string     `json:"taskName" binding:"required,max=200"`
	TaskAssignees StringList `json:"taskAssignees" binding:"required,min=1"`
	ProjectID     string     `json:"projectId" binding:"required"`
	TaskTags      StringList `json:"taskTags"`
	Deadline      *Date      `json:"deadline" binding:"required"`
	Image         string     `json:"image" binding:"omitempty,datauri_or_url"`
	Description   string     `json:"description" binding:"required,max=5000"`
}

// UpdateTaskRequest is the body of PUT /updatetasks/:id. Only the fields
// present in the body are applied.
type UpdateTaskRequest struct {
	TaskName      *string     `json:"taskName" binding:"omitempty,min=1,max=200"`
	TaskAssignees *StringList `json:"taskAssignees" binding:"omitempty,min=1"`
	ProjectID     *string     `json:"projectId" binding:"omitempty,min=1"`
	TaskTags      *StringList `json:"taskTags"`
	Deadline      *Date       `json:"deadline"`
	Image         *string     `json:"image" binding:"omitempty,datauri_or_url"`
	Description   *string     `json:"description" binding:"omitempty,min=1,max=5000"`
}

// GenerateTasksRequest asks for task drafts for a project.
type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// TaskDraft is a suggested task; it is not persisted.
type TaskDraft struct {
	TaskName    string `json:"taskName"`
	Description string `json:"description"`
	Deadline    string `json:"deadline,omitempty"`
}
