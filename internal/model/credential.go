package model

// Roles carried in the "role" claim of a signed credential.  Every service in
// the platform shares the same signing secret and grants data access based on
// these values.
//
//	RoleAdmin        – full administrative access, issued at institution login.
//	RoleServiceAgent – narrow role for check-in devices; accepted only by the
//	                   presence submission endpoint.
const (
	RoleAdmin        = "admin"
	RoleServiceAgent = "service-agent"
)

// CredentialClaims is the decoded payload of a verified credential.  The
// subject identifies the owning institution; every record touched on behalf
// of this credential is scoped to that institution.
type CredentialClaims struct {
	InstitutionID string // "sub" claim
	Role          string // "role" claim
}
