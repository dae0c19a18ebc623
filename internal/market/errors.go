package market

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a snapshot validation failure.
type ErrorCode string

const (
	CodeInvalidRegion       ErrorCode = "INVALID_REGION"
	CodeInvalidBusinessType ErrorCode = "INVALID_BUSINESS_TYPE"
)

// ValidationError is returned for malformed snapshot input. Message is meant
// to be shown to the user as is.
type ValidationError struct {
	Code    ErrorCode
	Message string
	Value   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%q)", e.Code, e.Message, e.Value)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidateRegionCode checks the fixed digit-length pattern.
func ValidateRegionCode(code string) error {
	if len(code) != RegionCodeLength {
		return invalidRegion(code)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return invalidRegion(code)
		}
	}
	return nil
}

func invalidRegion(code string) error {
	return &ValidationError{
		Code:    CodeInvalidRegion,
		Message: fmt.Sprintf("행정동 코드는 %d자리 숫자여야 합니다.", RegionCodeLength),
		Value:   code,
	}
}

func invalidBusinessType(s string) error {
	return &ValidationError{
		Code:    CodeInvalidBusinessType,
		Message: "업종은 FNB, RETAIL, SERVICE 중 하나여야 합니다.",
		Value:   s,
	}
}
