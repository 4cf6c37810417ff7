package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
)

// Field is a typed form input: it parses raw text into its slot of V and renders it back.
type Field[V any] struct {
	name   string
	parse  func(v *V, raw string) error
	format func(v *V) string
}

func (f Field[V]) Name() string { return f.name }

var (
	errNotNumber = "deve ser um número"
	errNotBool   = "deve ser verdadeiro ou falso"
	errNotDate   = "deve ser uma data no formato AAAA-MM-DD"
	errNotID     = "seleção inválida"
)

type parseError string

func (e parseError) Error() string { return string(e) }

func TextField[V any](name string, slot func(*V) *string) Field[V] {
	return Field[V]{
		name:   name,
		parse:  func(v *V, raw string) error { *slot(v) = raw; return nil },
		format: func(v *V) string { return *slot(v) },
	}
}

// OptionalTextField stores blank input as null.
func OptionalTextField[V any](name string, slot func(*V) *null.String) Field[V] {
	return Field[V]{
		name: name,
		parse: func(v *V, raw string) error {
			*slot(v) = null.NewString(raw, strings.TrimSpace(raw) != "")
			return nil
		},
		format: func(v *V) string { return slot(v).String },
	}
}

func IntField[V any](name string, slot func(*V) *int) Field[V] {
	return Field[V]{
		name: name,
		parse: func(v *V, raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				*slot(v) = 0
				return nil
			}
			i, err := strconv.Atoi(raw)
			if err != nil {
				return parseError(errNotNumber)
			}
			*slot(v) = i
			return nil
		},
		format: func(v *V) string { return strconv.Itoa(*slot(v)) },
	}
}

// FloatField accepts both "7.5" and "7,5".
func FloatField[V any](name string, slot func(*V) *float64) Field[V] {
	return Field[V]{
		name: name,
		parse: func(v *V, raw string) error {
			raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
			if raw == "" {
				*slot(v) = 0
				return nil
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return parseError(errNotNumber)
			}
			*slot(v) = f
			return nil
		},
		format: func(v *V) string { return strconv.FormatFloat(*slot(v), 'f', -1, 64) },
	}
}

func BoolField[V any](name string, slot func(*V) *bool) Field[V] {
	return Field[V]{
		name: name,
		parse: func(v *V, raw string) error {
			switch core.CleanString(raw, true) {
			case "", "0", "false", "nao", "não", "n":
				*slot(v) = false
			case "1", "true", "sim", "s":
				*slot(v) = true
			default:
				return parseError(errNotBool)
			}
			return nil
		},
		format: func(v *V) string { return strconv.FormatBool(*slot(v)) },
	}
}

// DateField keeps the date as its wire string, checking the layout on input.
func DateField[V any](name string, slot func(*V) *string) Field[V] {
	return Field[V]{
		name: name,
		parse: func(v *V, raw string) error {
			raw = strings.TrimSpace(raw)
			if raw != "" {
				if _, err := time.Parse(core.DateLayout, raw); err != nil {
					return parseError(errNotDate)
				}
			}
			*slot(v) = raw
			return nil
		},
		format: func(v *V) string { return *slot(v) },
	}
}

// IDField is a required selection; blank input selects nothing (0).
func IDField[V any](name string, slot func(*V) *int) Field[V] {
	return Field[V]{
		name: name,
		parse: func(v *V, raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				*slot(v) = 0
				return nil
			}
			id, err := strconv.Atoi(raw)
			if err != nil || id < 0 {
				return parseError(errNotID)
			}
			*slot(v) = id
			return nil
		},
		format: func(v *V) string {
			if id := *slot(v); id > 0 {
				return strconv.Itoa(id)
			}
			return ""
		},
	}
}

// OptionalIDField is a selection that may be left empty (null).
func OptionalIDField[V any](name string, slot func(*V) *null.Int) Field[V] {
	return Field[V]{
		name: name,
		parse: func(v *V, raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				*slot(v) = null.Int{}
				return nil
			}
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				return parseError(errNotID)
			}
			*slot(v) = null.IntFrom(id)
			return nil
		},
		format: func(v *V) string {
			if s := slot(v); s.Valid {
				return strconv.Itoa(s.Int)
			}
			return ""
		},
	}
}
