package diagnosis

import (
	"clinica/pkg/domain"
	str "clinica/pkg/string"
	"clinica/pkg/validation"
)

// CreateDiagnosisRequest adds a row to the catalog. Unlike the patient inputs,
// the shape here is trusted enough for typed decoding plus tag validation.
type CreateDiagnosisRequest struct {
	Code  string  `json:"code" validate:"required,notblank,max=16"`
	Name  string  `json:"name" validate:"required,notblank,max=256"`
	Latin *string `json:"latin,omitempty" validate:"omitempty,notblank,max=256"`
}

func (r *CreateDiagnosisRequest) Normalize() {
	if r == nil {
		return
	}
	str.TrimStrings(&r.Code, &r.Name)
	if r.Latin != nil {
		str.TrimStrings(r.Latin)
	}
}

func (r *CreateDiagnosisRequest) Validate() error {
	return validation.Validate(r)
}

func (r *CreateDiagnosisRequest) ToDiagnosis() Diagnosis {
	return Diagnosis{
		Code:  domain.DiagnosisCode(r.Code),
		Name:  r.Name,
		Latin: r.Latin,
	}
}
