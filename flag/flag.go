package flag

import (
	// Stdlib
	"fmt"
	"strings"
)

// StringEnum is a flag value restricted to a set of strings.
// It satisfies pflag.Value.
type StringEnum struct {
	allowed []string
	value   string
}

func NewStringEnum(allowed []string, defaultValue string) *StringEnum {
	return &StringEnum{allowed, defaultValue}
}

func (enum *StringEnum) String() string {
	return enum.value
}

func (enum *StringEnum) Set(value string) error {
	for _, v := range enum.allowed {
		if v == value {
			enum.value = value
			return nil
		}
	}
	return fmt.Errorf("value not allowed: %v (expected one of %v)",
		value, strings.Join(enum.allowed, ", "))
}

func (enum *StringEnum) Type() string {
	return "{" + strings.Join(enum.allowed, "|") + "}"
}

func (enum *StringEnum) Value() string {
	return enum.value
}
