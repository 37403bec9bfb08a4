package dto

// ProjectRequest is the body of POST /addprojects.
type ProjectRequest struct {
	ProjectName    string     `json:"projectName" binding:"required,max=200"`
	ProjectManager string     `json:"projectManager" binding:"required,max=100"`
	ProjectTags    StringList `json:"projectTags"`
	Deadline       *Date      `json:"deadline" binding:"required"`
	Priority       string     `json:"priority" binding:"omitempty,priority"`
	Image          string     `json:"image" binding:"omitempty,datauri_or_url"`
	Description    string     `json:"description" binding:"max=5000"`
}

// UpdateProjectRequest is the body of PUT /updateprojects/:id. Only the
// fields present in the body are applied.
type UpdateProjectRequest struct {
	ProjectName    *string     `json:"projectName" binding:"omitempty,min=1,max=200"`
	ProjectManager *string     `json:"projectManager" binding:"omitempty,min=1,max=100"`
	ProjectTags    *StringList `json:"projectTags"`
	Deadline       *Date       `json:"deadline"`
	Priority       *string     `json:"priority" binding:"omitempty,priority"`
	Image          *string     `json:"image" binding:"omitempty,datauri_or_url"`
	Description    *string     `json:"description" binding:"omitempty,max=5000"`
}
