// Package errs provides the error types shared by the domain, application and adapter layers.
//
// Each type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) with a struct carrying
// the offending parameter, so callers can branch with errors.Is and inspect with errors.As.
package errs
