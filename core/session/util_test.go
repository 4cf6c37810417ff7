package session

import "github.com/pkg/errors"

func errorsCause(err error) error { return errors.Cause(err) }
