package classifier

// Category identifies the type of an IT support request.
// The set is closed; new categories require a pattern-table entry and a slot
// in the tie-break order, not a change to the matching algorithm.
type Category string

const (
	CategoryPasswordReset        Category = "password_reset"
	CategorySoftwareInstallation Category = "software_installation"
	CategoryHardwareFailure      Category = "hardware_failure"
	CategoryNetworkConnectivity  Category = "network_connectivity"
	CategoryEmailConfiguration   Category = "email_configuration"
	CategorySecurityIncident     Category = "security_incident"
	CategoryPolicyQuestion       Category = "policy_question"
	CategoryUnknown              Category = "unknown"
	CategoryNonITRequest         Category = "non_it_request"
)

// categoryOrder fixes the evaluation (and tie-break) order. Earlier entries win
// ties, so classification stays deterministic regardless of input phrasing.
var categoryOrder = []Category{
	CategorySecurityIncident,
	CategoryPasswordReset,
	CategoryHardwareFailure,
	CategoryNetworkConnectivity,
	CategoryEmailConfiguration,
	CategorySoftwareInstallation,
	CategoryPolicyQuestion,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPasswordReset, CategorySoftwareInstallation, CategoryHardwareFailure,
		CategoryNetworkConnectivity, CategoryEmailConfiguration, CategorySecurityIncident,
		CategoryPolicyQuestion, CategoryUnknown, CategoryNonITRequest:
		return true
	}
	return false
}
