package i18n

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error that can be translated
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
}

// MessageProvider defines an interface for getting default messages
type MessageProvider interface {
	GetMessage(key string) string
}

// TrError represents a translatable error with optional formatting arguments
// and error wrapping support.
//
// Example usage:
//
//	err := NewError("shellcomp.error.unsupported_target")
//	err = err.WithArgs("tcsh", []string{"bash", "zsh"})
//	err = err.Wrap(originalError)
type TrError struct {
	// sentinel identifies the error family for errors.Is
	sentinel error
	key      string
	args     []interface{}
	wrapped  error
}

// BundleMessageProvider implements MessageProvider using a Bundle and a fixed language
type BundleMessageProvider struct {
	bundle *Bundle
	lang   language.Tag
}

// NewBundleMessageProvider returns a provider resolving messages from bundle in lang
func NewBundleMessageProvider(bundle *Bundle, lang language.Tag) *BundleMessageProvider {
	return &BundleMessageProvider{bundle: bundle, lang: lang}
}

func (p *BundleMessageProvider) GetMessage(key string) string {
	return p.bundle.Lookup(p.lang, key)
}

// NewError creates a new translatable error with a key
func NewError(key string) *TrError {
	return &TrError{
		sentinel: errors.New(key),
		key:      key,
	}
}

// Error returns the message of the current default provider, formatted with args if provided
func (e *TrError) Error() string {
	msg := getDefaultProvider().GetMessage(e.key)
	if len(e.args) > 0 {
		msg = fmt.Sprintf(msg, e.args...)
	}

	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     args,
		wrapped:  e.wrapped,
	}
}

// Wrap returns a new error that wraps another error
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     e.args,
		wrapped:  err,
	}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}
	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider replaces the provider used to render error messages. Passing
// nil restores the English provider backed by the embedded bundle.
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	p := defaultProvider
	defaultProviderMux.RUnlock()
	if p != nil {
		return p
	}

	return NewBundleMessageProvider(Default(), language.English)
}
