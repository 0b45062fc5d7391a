package reconcile

import "errors"

var (
	ErrStoreRequired      = errors.New("reconcile: entity store is required")
	ErrDictionaryRequired = errors.New("reconcile: dictionary service is required")
	ErrUnknownSourceList  = errors.New("reconcile: unknown source list")
	ErrUnknownRowItem     = errors.New("reconcile: row item variant not handled")
	ErrLanguageRequired   = errors.New("reconcile: target language is required")
	ErrNoFieldsProvided   = errors.New("reconcile: at least one field value is required")
)
