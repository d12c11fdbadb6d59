package tool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Argument payloads. Field names follow the JSON schema of each tool.

type nodeIDArgs struct {
	NodeID string `json:"node_id" validate:"required,max=256"`
}

type edgeIDArgs struct {
	EdgeID string `json:"edge_id" validate:"required,max=256"`
}

type addNodeArgs struct {
	ID          string `json:"id" validate:"max=256"`
	Name        string `json:"name" validate:"required,max=1024"`
	Title       string `json:"title" validate:"max=1024"`
	Description string `json:"description" validate:"max=16384"`
	Content     any    `json:"content"`
}

type addEdgeArgs struct {
	ID          string `json:"id" validate:"max=256"`
	StartID     string `json:"start_id" validate:"required,max=256"`
	EndID       string `json:"end_id" validate:"required,max=256"`
	Title       string `json:"title" validate:"max=1024"`
	Description string `json:"description" validate:"max=16384"`
}

type findPathArgs struct {
	StartID  string `json:"start_id" validate:"required,max=256"`
	GoalID   string `json:"goal_id" validate:"required,max=256"`
	MaxDepth int    `json:"max_depth" validate:"gte=0"`
}

type listArgs struct {
	Offset int `json:"offset" validate:"gte=0"`
	Limit  int `json:"limit" validate:"gte=0,lte=10000"`
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// decodeArgs unmarshals raw into dst and validates it.
// Empty input and JSON null decode as an empty object. Unknown fields are rejected.
func decodeArgs(v *validator.Validate, raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after arguments object", ErrInvalidArgs)
	}
	if err := v.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgs, describeValidation(err))
	}

	return nil
}

// describeValidation flattens validator errors into "field: rule" pairs.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fe.Field()+": "+rule)
	}

	return strings.Join(parts, "; ")
}
