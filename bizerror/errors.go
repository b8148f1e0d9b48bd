package bizerror

import (
	"errors"
	"net/http"
	"tracker/i18n"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyRequests    = errors.New("too many requests, please try again later")

	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrAssigneeNotFound = errors.New("assignee not found")

	ErrWorkspaceSlugTaken = errors.New("workspace slug already taken")
	ErrWorkspaceNotFound  = errors.New("workspace not found")

	ErrTeamSlugTaken = errors.New("team with this identifier already exists")
	ErrTeamNotFound  = errors.New("team not found")

	// ErrSlugBasisEmpty is returned when a derived slug basis has no usable characters left.
	ErrSlugBasisEmpty = errors.New("slug basis is empty after normalization")
	ErrSlugExhausted  = errors.New("no free slug candidate left")

	ErrIssueIdentifierAmbiguous = errors.New("identifier matches issues in several workspaces, specify workspaceId")
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return i18n.CommonBadParam
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := i18n.CommonBadParam
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: i18n.CommonBadParam, Message: message, Data: nil}
}

type knownError struct {
	err    error
	status int
	code   string
}

var knownErrors = []knownError{
	{ErrUnauthenticated, http.StatusUnauthorized, i18n.CommonUnauthenticated},
	{ErrInvalidCredentials, http.StatusUnauthorized, i18n.SecurityInvalidCredentials},
	{ErrForbidden, http.StatusForbidden, i18n.SecurityForbidden},
	{ErrTooManyRequests, http.StatusTooManyRequests, i18n.CommonTooManyRequests},
	{ErrEmailTaken, http.StatusConflict, i18n.AccountEmailTaken},
	{ErrAssigneeNotFound, http.StatusNotFound, i18n.AccountAssigneeNotFound},
	{ErrWorkspaceSlugTaken, http.StatusConflict, i18n.WorkspaceSlugTaken},
	{ErrWorkspaceNotFound, http.StatusNotFound, i18n.WorkspaceNotFound},
	{ErrTeamSlugTaken, http.StatusConflict, i18n.TeamSlugTaken},
	{ErrTeamNotFound, http.StatusNotFound, i18n.TeamNotFound},
	{ErrSlugBasisEmpty, http.StatusBadRequest, i18n.TeamSlugBasisEmpty},
	{ErrSlugExhausted, http.StatusConflict, i18n.TeamSlugExhausted},
	{ErrIssueIdentifierAmbiguous, http.StatusConflict, i18n.IssueIdentifierAmbiguous},
}

func lookupKnownError(err error) (knownError, bool) {
	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			return k, true
		}
	}
	return knownError{}, false
}
