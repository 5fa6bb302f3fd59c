package api

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidParams = errors.New("invalid params")
	ErrBodyTooLarge  = errors.New("post body is too large")
)

type ErrorField struct {
	FieldName    string `json:"field"`
	ErrorMessage string `json:"message"`
}

type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []ErrorField `json:"fields,omitempty"`
}

func NewErrorResponse(err error, fields ...ErrorField) ErrorResponse {
	return ErrorResponse{Error: err.Error(), Fields: fields}
}

var validationMessages = map[string]string{
	"required": "this field is required",
	"min":      "value is too short",
	"max":      "value is too long",
	"len":      "invalid length",
	"oneof":    "must be one of the allowed values",
	"gte":      "must be greater than or equal to the allowed minimum",
	"lte":      "must be less than or equal to the allowed maximum",
}

// ExtractErrorFields flattens validator errors into per-field messages.
// Any other error yields no fields.
func ExtractErrorFields(err error) []ErrorField {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make([]ErrorField, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := validationMessages[fe.Tag()]
		if !ok {
			msg = "invalid input"
		}
		fields = append(fields, ErrorField{FieldName: fe.Field(), ErrorMessage: msg})
	}

	return fields
}

func extractErrorFromBuffer(buf *bytes.Buffer) (*ErrorResponse, error) {
	var resp ErrorResponse
	if err := json.NewDecoder(buf).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
