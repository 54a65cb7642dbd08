package services

import "errors"

// Service-level sentinels. Handlers map these onto HTTP status codes in
// one place; services never see status codes.
var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoadmapNotFound   = errors.New("roadmap not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrInterviewNotFound = errors.New("interview not found")

	ErrInterviewNotActive      = errors.New("interview is not active")
	ErrInterviewExpired        = errors.New("interview session has timed out")
	ErrQuestionNotInInterview  = errors.New("question does not belong to this interview")
	ErrQuestionAlreadyAnswered = errors.New("question has already been answered")
	ErrFeedbackNotReady        = errors.New("feedback is only available for completed interviews")
	ErrNotEnoughQuestions      = errors.New("not enough approved questions for this role and level")

	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound) ||
		errors.Is(err, ErrRoadmapNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrInterviewNotFound) ||
		errors.Is(err, ErrQuestionNotInInterview)
}

// IsConflict reports whether err describes a state conflict (409).
func IsConflict(err error) bool {
	return errors.Is(err, ErrQuestionAlreadyAnswered) ||
		errors.Is(err, ErrInterviewNotActive)
}
