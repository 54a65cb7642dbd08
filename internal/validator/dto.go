package validator

// StartInterviewRequest starts a mock interview session.
type StartInterviewRequest struct {
	RoleID        uint   `json:"role_id" validate:"required"`
	Level         string `json:"level" validate:"required,experience_level"`
	QuestionCount int    `json:"question_count" validate:"required,min=1,max=20"`
}

// SubmitAnswerRequest submits the answer for one interview question.
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Code       string `json:"code" validate:"required,max=50000"`
}

// ApproveQuestionRequest flips a question's approval gate.
type ApproveQuestionRequest struct {
	QuestionID uint `json:"question_id" validate:"required"`
}

// QuestionUpdateRequest is the admin edit surface for a question.
// All fields are optional; nil means "leave unchanged".
type QuestionUpdateRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=1,max=300"`
	Content      *string  `json:"content" validate:"omitempty,min=1"`
	Type         *string  `json:"type" validate:"omitempty,question_type"`
	Difficulty   *string  `json:"difficulty" validate:"omitempty,difficulty_level"`
	Technologies []string `json:"technologies" validate:"omitempty,max=20,dive,max=50"`
	Roles        []string `json:"roles" validate:"omitempty,max=20,dive,max=100"`
	Companies    []string `json:"companies" validate:"omitempty,max=20,dive,max=100"`
	Tags         []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsApproved   *bool    `json:"is_approved"`
}

// LoginRequest authenticates the demo admin credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
