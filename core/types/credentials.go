package types

import "encoding/json"

// CredentialStatus is the outcome of a credential check
type CredentialStatus int

const (
	CredentialsValid CredentialStatus = iota
	CredentialsMissing
	CredentialsNetworkUnreachable
)

// String returns the status name
func (s CredentialStatus) String() string {
	switch s {
	case CredentialsValid:
		return "valid"
	case CredentialsMissing:
		return "missing"
	case CredentialsNetworkUnreachable:
		return "network_unreachable"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status by name
func (s CredentialStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CredentialState is the result of validating provider credentials.
// Message is empty when Status is CredentialsValid.
type CredentialState struct {
	Status  CredentialStatus `json:"status"`
	Message string           `json:"message,omitempty"`
}

// OK reports whether the credentials are usable
func (s CredentialState) OK() bool {
	return s.Status == CredentialsValid
}

// ValidCredentials returns the valid state
func ValidCredentials() CredentialState {
	return CredentialState{Status: CredentialsValid}
}

// MissingCredentials returns a state for absent local credentials
func MissingCredentials(message string) CredentialState {
	return CredentialState{Status: CredentialsMissing, Message: message}
}

// UnreachableCredentials returns a state for a failed connectivity probe
func UnreachableCredentials(message string) CredentialState {
	return CredentialState{Status: CredentialsNetworkUnreachable, Message: message}
}
