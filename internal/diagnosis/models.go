// Package diagnosis holds the diagnosis catalog the patient core references
// by opaque code. The catalog is its own small module: the patient record
// core never validates codes against it.
package diagnosis

import "clinica/pkg/domain"

// Diagnosis is one catalog row. Latin is optional and stays a pointer so
// presence and absence survive serialization unambiguously.
type Diagnosis struct {
	Code  domain.DiagnosisCode `json:"code"`
	Name  string               `json:"name"`
	Latin *string              `json:"latin,omitempty"`
}
