package i18n

const (
	CommonInternalServerError = "common.internal_server_error"
	CommonBadParam            = "common.bad_param"
	CommonRecordNotFound      = "common.record_not_found"
	CommonRouteNotFound       = "common.route_not_found"
	CommonConflict            = "common.conflict"
	CommonUnauthenticated     = "common.unauthenticated"
	CommonTooManyRequests     = "common.too_many_requests"

	SecurityForbidden          = "security.forbidden"
	SecurityInvalidCredentials = "security.invalid_credentials"

	AccountEmailTaken       = "account.email_taken"
	AccountAssigneeNotFound = "account.assignee_not_found"

	WorkspaceSlugTaken = "workspace.slug_taken"
	WorkspaceNotFound  = "workspace.not_found"

	TeamSlugTaken      = "team.slug_taken"
	TeamSlugBasisEmpty = "team.slug_basis_empty"
	TeamSlugExhausted  = "team.slug_exhausted"
	TeamNotFound       = "team.not_found"

	IssueIdentifierAmbiguous = "issue.identifier_ambiguous"
)
