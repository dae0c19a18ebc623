package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

const maxBodyBytes = 64 << 10

var errInvalidBody = errors.New("invalid request body")

// decodeJSONBody decodes a size-limited JSON body and validates it.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return validate.Struct(dest)
}

// fieldErrors maps a validator error to per-field Korean messages. Other
// errors yield nil.
func fieldErrors(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		details[fe.Field()] = validationMessage(fe)
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "필수 입력 항목입니다."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s자 이상 입력해 주세요.", fe.Param())
		}
		return fmt.Sprintf("%s 이상이어야 합니다.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s자 이하로 입력해 주세요.", fe.Param())
		}
		return fmt.Sprintf("%s 이하여야 합니다.", fe.Param())
	case "email":
		return "올바른 이메일 주소를 입력해 주세요."
	case "url":
		return "올바른 URL을 입력해 주세요."
	case "oneof":
		return "선택할 수 없는 값입니다."
	case "eq":
		return "동의가 필요합니다."
	}
	return "올바르지 않은 값입니다."
}
